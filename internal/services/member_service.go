package services

import (
	"context"

	"github.com/google/uuid"

	"gymflow/internal/models/db_models"
	"gymflow/internal/models/request_models"
	"gymflow/internal/models/response_models"
	"gymflow/internal/repositories"
	"gymflow/pkg/utils"
)

type MemberServiceInterface interface {
	CreateMember(ctx context.Context, accountID uuid.UUID, request request_models.CreateMemberRequest) (*response_models.MemberResponse, error)
	ListMembers(ctx context.Context, accountID uuid.UUID) ([]response_models.MemberResponse, error)
}

type MemberService struct {
	memberRepo repositories.MemberRepository
}

func NewMemberService(memberRepo repositories.MemberRepository) MemberServiceInterface {
	return &MemberService{memberRepo: memberRepo}
}

func (m *MemberService) CreateMember(ctx context.Context, accountID uuid.UUID, request request_models.CreateMemberRequest) (*response_models.MemberResponse, error) {
	member := &db_models.Member{
		Name:      request.Name,
		Email:     request.Email,
		AccountID: accountID,
	}

	if err := m.memberRepo.Insert(ctx, member); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := memberResponse(member)
	return &resp, nil
}

func (m *MemberService) ListMembers(ctx context.Context, accountID uuid.UUID) ([]response_models.MemberResponse, error) {
	members, err := m.memberRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, memberResponse(&members[i]))
	}
	return out, nil
}

func memberResponse(member *db_models.Member) response_models.MemberResponse {
	payments := make([]response_models.PaymentSummary, 0, len(member.Payments))
	for _, p := range member.Payments {
		payments = append(payments, response_models.PaymentSummary{
			ID:     p.ID,
			Amount: p.Amount,
			Status: string(p.Status),
		})
	}
	return response_models.MemberResponse{
		ID:       member.ID,
		Name:     member.Name,
		Email:    member.Email,
		Payments: payments,
	}
}
