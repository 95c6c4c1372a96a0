package middleware

import (
	"sync"

	"github.com/heartmarshall/fixnote-backend/internal/auth"
)

var _ initDataValidator = &initDataValidatorMock{}

type initDataValidatorMock struct {
	ValidateFunc func(string) (auth.TelegramIdentity, error)

	calls struct {
		Validate []struct {
			Raw string
		}
	}
	lockValidate sync.RWMutex
}

func (mock *initDataValidatorMock) Validate(raw string) (auth.TelegramIdentity, error) {
	if mock.ValidateFunc == nil {
		panic("initDataValidatorMock.ValidateFunc: method is nil but initDataValidator.Validate was just called")
	}
	callInfo := struct {
		Raw string
	}{
		Raw: raw,
	}
	mock.lockValidate.Lock()
	mock.calls.Validate = append(mock.calls.Validate, callInfo)
	mock.lockValidate.Unlock()
	return mock.ValidateFunc(raw)
}

func (mock *initDataValidatorMock) ValidateCalls() []struct {
	Raw string
} {
	mock.lockValidate.RLock()
	calls := mock.calls.Validate
	mock.lockValidate.RUnlock()
	return calls
}
