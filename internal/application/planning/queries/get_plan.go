package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/vfrplanner-go/internal/application/common"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
)

// GetPlanQuery fetches the session's current plan
type GetPlanQuery struct {
	SessionID string `validate:"required"`
}

// GetPlanResponse carries the plan
type GetPlanResponse struct {
	Plan *planning.Plan
}

// GetPlanHandler handles the GetPlan query
type GetPlanHandler struct {
	store planning.PlanStore
}

// NewGetPlanHandler creates a new GetPlanHandler
func NewGetPlanHandler(store planning.PlanStore) *GetPlanHandler {
	return &GetPlanHandler{store: store}
}

// Handle executes the GetPlan query
func (h *GetPlanHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetPlanQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPlanQuery")
	}
	if err := planning.ValidateRequest(query); err != nil {
		return nil, err
	}

	plan, err := h.store.Find(ctx, query.SessionID)
	if err != nil {
		return nil, err
	}
	return &GetPlanResponse{Plan: plan}, nil
}
