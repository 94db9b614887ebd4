package handler

import (
	"context"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/drivingschool"
	"google.golang.org/protobuf/types/known/structpb"
)

// DrivingSchoolGrpcHandler は DrivingSchoolService の gRPC 実装です。
type DrivingSchoolGrpcHandler struct {
	svc drivingschool.UseCase
}

var _ DrivingSchoolServiceServer = (*DrivingSchoolGrpcHandler)(nil)

// NewDrivingSchoolGrpcHandler は DrivingSchoolGrpcHandler を生成します。
func NewDrivingSchoolGrpcHandler(svc drivingschool.UseCase) *DrivingSchoolGrpcHandler {
	return &DrivingSchoolGrpcHandler{svc: svc}
}

// CreateADrivingSchool は教習所を作成します。
func (h *DrivingSchoolGrpcHandler) CreateADrivingSchool(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createDrivingSchoolRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	created, err := h.svc.CreateADrivingSchool(ctx, actorFrom(ctx), drivingschool.CreateDrivingSchoolInput{
		CompanyID:    company.ID(in.CompanyID),
		Name:         in.Name,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		OpeningHours: in.OpeningHours,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(toFullDrivingSchoolDTO(created.Data()))
}

// RetrieveADrivingSchool は実行者のロールに応じた表現で教習所を返します。
func (h *DrivingSchoolGrpcHandler) RetrieveADrivingSchool(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in idRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	view, err := h.svc.RetrieveADrivingSchool(ctx, actorFrom(ctx), drivingschool.ID(in.ID))
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(toViewDTO(view))
}

// RetrieveDrivingSchoolsOfACompany は会社に属する教習所を返します。
func (h *DrivingSchoolGrpcHandler) RetrieveDrivingSchoolsOfACompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in companyOfDrivingSchoolsRequest
	if err := decode(req, &in); err != nil {
		return nil, err
	}

	schools, err := h.svc.RetrieveDrivingSchoolsOfACompany(ctx, actorFrom(ctx), company.ID(in.CompanyID))
	if err != nil {
		return nil, toStatusError(err)
	}

	out := drivingSchoolsDTO{DrivingSchools: make([]drivingSchoolDTO, 0, len(schools))}
	for _, s := range schools {
		out.DrivingSchools = append(out.DrivingSchools, toFullDrivingSchoolDTO(s.Data()))
	}
	return encode(out)
}
