package handler

import (
	"context"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/adapters/grpc/auth"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
	"google.golang.org/protobuf/types/known/structpb"
)

// CompanyGrpcHandler は CompanyService の gRPC 実装です。
type CompanyGrpcHandler struct {
	svc company.UseCase
}

var _ CompanyServiceServer = (*CompanyGrpcHandler)(nil)

// NewCompanyGrpcHandler は CompanyGrpcHandler を生成します。
func NewCompanyGrpcHandler(svc company.UseCase) *CompanyGrpcHandler {
	return &CompanyGrpcHandler{svc: svc}
}

// CreateACompany は会社を作成します。
func (h *CompanyGrpcHandler) CreateACompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createCompanyRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	created, err := h.svc.CreateACompany(ctx, actorFrom(ctx), company.CreateCompanyInput{
		Name:        in.Name,
		Address:     in.Address,
		LegalStatus: in.LegalStatus,
		Contact:     company.Contact{Phone: in.Contact.Phone, Email: in.Contact.Email},
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(toCompanyDTO(created))
}

// EditACompany は指定されたフィールドのみを変更します。
func (h *CompanyGrpcHandler) EditACompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in editCompanyRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	var changedContact *company.Contact
	if in.Contact != nil {
		changedContact = &company.Contact{Phone: in.Contact.Phone, Email: in.Contact.Email}
	}

	edited, err := h.svc.EditACompany(ctx, actorFrom(ctx), company.EditCompanyInput{
		ID:          company.ID(in.ID),
		Name:        in.Name,
		Address:     in.Address,
		LegalStatus: in.LegalStatus,
		Contact:     changedContact,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(toCompanyDTO(edited))
}

// DeleteACompany は会社を削除します。
func (h *CompanyGrpcHandler) DeleteACompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in idRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	deleted, err := h.svc.DeleteACompany(ctx, actorFrom(ctx), company.DeleteCompanyInput{ID: company.ID(in.ID)})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(deletedDTO{ID: string(deleted.ID), Deleted: true})
}

// RetrieveACompany は会社を取得します。
func (h *CompanyGrpcHandler) RetrieveACompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in idRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	found, err := h.svc.RetrieveACompany(ctx, actorFrom(ctx), company.RetrieveCompanyInput{ID: company.ID(in.ID)})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(toCompanyDTO(found))
}

// RetrieveCompanies は会社を作成日時の降順で取得します。
func (h *CompanyGrpcHandler) RetrieveCompanies(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in emptyRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	companies, err := h.svc.RetrieveCompanies(ctx, actorFrom(ctx))
	if err != nil {
		return nil, toStatusError(err)
	}

	out := companiesDTO{Companies: make([]companyDTO, 0, len(companies))}
	for _, c := range companies {
		out.Companies = append(out.Companies, toCompanyDTO(c))
	}
	return encode(out)
}

// actorFrom は認証済みユーザーを返します。未認証の場合は nil です。
func actorFrom(ctx context.Context) *user.User {
	actor, _ := auth.ActorFromContext(ctx)
	return actor
}
