package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

var _ subscriptionService = &subscriptionServiceMock{}

type subscriptionServiceMock struct {
	GetSubscriptionInfoFunc func(context.Context, uuid.UUID) (domain.SubscriptionInfo, error)
	GetLimitsFunc           func(domain.Plan) domain.SubscriptionLimits

	calls struct {
		GetSubscriptionInfo []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		GetLimits []struct {
			Plan domain.Plan
		}
	}
	lockGetSubscriptionInfo sync.RWMutex
	lockGetLimits           sync.RWMutex
}

func (mock *subscriptionServiceMock) GetSubscriptionInfo(ctx context.Context, userID uuid.UUID) (domain.SubscriptionInfo, error) {
	if mock.GetSubscriptionInfoFunc == nil {
		panic("subscriptionServiceMock.GetSubscriptionInfoFunc: method is nil but subscriptionService.GetSubscriptionInfo was just called")
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

func (mock *subscriptionServiceMock) GetSubscriptionInfoCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGetSubscriptionInfo.RLock()
	calls := mock.calls.GetSubscriptionInfo
	mock.lockGetSubscriptionInfo.RUnlock()
	return calls
}

func (mock *subscriptionServiceMock) GetLimits(plan domain.Plan) domain.SubscriptionLimits {
	if mock.GetLimitsFunc == nil {
		panic("subscriptionServiceMock.GetLimitsFunc: method is nil but subscriptionService.GetLimits was just called")
	}
	callInfo := struct {
		Plan domain.Plan
	}{
		Plan: plan,
	}
	mock.lockGetLimits.Lock()
	mock.calls.GetLimits = append(mock.calls.GetLimits, callInfo)
	mock.lockGetLimits.Unlock()
	return mock.GetLimitsFunc(plan)
}

func (mock *subscriptionServiceMock) GetLimitsCalls() []struct {
	Plan domain.Plan
} {
	mock.lockGetLimits.RLock()
	calls := mock.calls.GetLimits
	mock.lockGetLimits.RUnlock()
	return calls
}
