package telegram

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

var _ ledger = &ledgerMock{}

type ledgerMock struct {
	CanUseFeatureFunc       func(context.Context, uuid.UUID, domain.Feature) domain.FeatureDecision
	GetSubscriptionInfoFunc func(context.Context, uuid.UUID) (domain.SubscriptionInfo, error)
	ConfirmPaymentFunc      func(context.Context, domain.Payment) (bool, error)

	calls struct {
		CanUseFeature []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			Feature domain.Feature
		}
		GetSubscriptionInfo []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		ConfirmPayment []struct {
			Ctx context.Context
			P   domain.Payment
		}
	}
	lockCanUseFeature       sync.RWMutex
	lockGetSubscriptionInfo sync.RWMutex
	lockConfirmPayment      sync.RWMutex
}

func (mock *ledgerMock) CanUseFeature(ctx context.Context, userID uuid.UUID, feature domain.Feature) domain.FeatureDecision {
	if mock.CanUseFeatureFunc == nil {
		panic("ledgerMock.CanUseFeatureFunc: method is nil but ledger.CanUseFeature was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		Feature domain.Feature
	}{
		Ctx:     ctx,
		UserID:  userID,
		Feature: feature,
	}
	mock.lockCanUseFeature.Lock()
	mock.calls.CanUseFeature = append(mock.calls.CanUseFeature, callInfo)
	mock.lockCanUseFeature.Unlock()
	return mock.CanUseFeatureFunc(ctx, userID, feature)
}

func (mock *ledgerMock) CanUseFeatureCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	Feature domain.Feature
} {
	mock.lockCanUseFeature.RLock()
	calls := mock.calls.CanUseFeature
	mock.lockCanUseFeature.RUnlock()
	return calls
}

func (mock *ledgerMock) GetSubscriptionInfo(ctx context.Context, userID uuid.UUID) (domain.SubscriptionInfo, error) {
	if mock.GetSubscriptionInfoFunc == nil {
		panic("ledgerMock.GetSubscriptionInfoFunc: method is nil but ledger.GetSubscriptionInfo was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockGetSubscriptionInfo.Lock()
	mock.calls.GetSubscriptionInfo = append(mock.calls.GetSubscriptionInfo, callInfo)
	mock.lockGetSubscriptionInfo.Unlock()
	return mock.GetSubscriptionInfoFunc(ctx, userID)
}

func (mock *ledgerMock) GetSubscriptionInfoCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGetSubscriptionInfo.RLock()
	calls := mock.calls.GetSubscriptionInfo
	mock.lockGetSubscriptionInfo.RUnlock()
	return calls
}

func (mock *ledgerMock) ConfirmPayment(ctx context.Context, p domain.Payment) (bool, error) {
	if mock.ConfirmPaymentFunc == nil {
		panic("ledgerMock.ConfirmPaymentFunc: method is nil but ledger.ConfirmPayment was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Payment
	}{
		Ctx: ctx,
		P:   p,
	}
	mock.lockConfirmPayment.Lock()
	mock.calls.ConfirmPayment = append(mock.calls.ConfirmPayment, callInfo)
	mock.lockConfirmPayment.Unlock()
	return mock.ConfirmPaymentFunc(ctx, p)
}

func (mock *ledgerMock) ConfirmPaymentCalls() []struct {
	Ctx context.Context
	P   domain.Payment
} {
	mock.lockConfirmPayment.RLock()
	calls := mock.calls.ConfirmPayment
	mock.lockConfirmPayment.RUnlock()
	return calls
}
