package notes

import (
	"context"
	"sync"
)

var _ transcriber = &transcriberMock{}

type transcriberMock struct {
	TranscribeFunc func(context.Context, []byte, string) (string, error)

	calls struct {
		Transcribe []struct {
			Ctx      context.Context
			Audio    []byte
			Filename string
		}
	}
	lockTranscribe sync.RWMutex
}

func (mock *transcriberMock) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if mock.TranscribeFunc == nil {
		panic("transcriberMock.TranscribeFunc: method is nil but transcriber.Transcribe was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Audio    []byte
		Filename string
	}{
		Ctx:      ctx,
		Audio:    audio,
		Filename: filename,
	}
	mock.lockTranscribe.Lock()
	mock.calls.Transcribe = append(mock.calls.Transcribe, callInfo)
	mock.lockTranscribe.Unlock()
	return mock.TranscribeFunc(ctx, audio, filename)
}

func (mock *transcriberMock) TranscribeCalls() []struct {
	Ctx      context.Context
	Audio    []byte
	Filename string
} {
	mock.lockTranscribe.RLock()
	calls := mock.calls.Transcribe
	mock.lockTranscribe.RUnlock()
	return calls
}
