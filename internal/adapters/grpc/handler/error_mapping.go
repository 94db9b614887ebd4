package handler

import (
	"errors"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/contact"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/drivingschool"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, contact.ErrInvalidEmail),
		errors.Is(err, contact.ErrInvalidPhoneNumber),
		errors.Is(err, company.ErrInvalidCompanyName),
		errors.Is(err, company.ErrInvalidID),
		errors.Is(err, drivingschool.ErrInvalidOpeningHours),
		errors.Is(err, drivingschool.ErrInvalidID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, company.ErrNotAuthorizedToCreateACompany),
		errors.Is(err, company.ErrNotAuthorizedToEditACompany),
		errors.Is(err, company.ErrNotAuthorizedToDeleteACompany),
		errors.Is(err, company.ErrNotAuthorizedToRetrieveACompany),
		errors.Is(err, company.ErrNotAuthorizedToRetrieveCompanies),
		errors.Is(err, drivingschool.ErrNotAuthorizedToCreateADrivingSchool),
		errors.Is(err, drivingschool.ErrNotAuthorizedToRetrieveDrivingSchoolsOfACompany):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, drivingschool.ErrNotAuthorizedToRetrieveADrivingSchool),
		errors.Is(err, user.ErrUserNotFound):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, company.ErrNotFound), errors.Is(err, drivingschool.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, drivingschool.ErrCompanyNotFound):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
