package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	CompanyServiceName       = "drivingschool.v1.CompanyService"
	DrivingSchoolServiceName = "drivingschool.v1.DrivingSchoolService"
)

// unaryMethod は google.protobuf.Struct を送受信する RPC を MethodDesc として組み立てます。
func unaryMethod[S any](service, name string, call func(S, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(service, name),
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*structpb.Struct))
			})
		},
	}
}

// FullMethod は gRPC のフルメソッド名を返します。
func FullMethod(service, name string) string {
	return "/" + service + "/" + name
}

// CompanyServiceServer は CompanyService のサーバー実装が満たすインターフェースです。
type CompanyServiceServer interface {
	CreateACompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	EditACompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteACompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RetrieveACompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RetrieveCompanies(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// DrivingSchoolServiceServer は DrivingSchoolService のサーバー実装が満たすインターフェースです。
type DrivingSchoolServiceServer interface {
	CreateADrivingSchool(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RetrieveADrivingSchool(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RetrieveDrivingSchoolsOfACompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// CompanyServiceDesc は CompanyService のサービス定義です。
var CompanyServiceDesc = grpc.ServiceDesc{
	ServiceName: CompanyServiceName,
	HandlerType: (*CompanyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(CompanyServiceName, "CreateACompany", CompanyServiceServer.CreateACompany),
		unaryMethod(CompanyServiceName, "EditACompany", CompanyServiceServer.EditACompany),
		unaryMethod(CompanyServiceName, "DeleteACompany", CompanyServiceServer.DeleteACompany),
		unaryMethod(CompanyServiceName, "RetrieveACompany", CompanyServiceServer.RetrieveACompany),
		unaryMethod(CompanyServiceName, "RetrieveCompanies", CompanyServiceServer.RetrieveCompanies),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "drivingschool/v1/company.proto",
}

// DrivingSchoolServiceDesc は DrivingSchoolService のサービス定義です。
var DrivingSchoolServiceDesc = grpc.ServiceDesc{
	ServiceName: DrivingSchoolServiceName,
	HandlerType: (*DrivingSchoolServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(DrivingSchoolServiceName, "CreateADrivingSchool", DrivingSchoolServiceServer.CreateADrivingSchool),
		unaryMethod(DrivingSchoolServiceName, "RetrieveADrivingSchool", DrivingSchoolServiceServer.RetrieveADrivingSchool),
		unaryMethod(DrivingSchoolServiceName, "RetrieveDrivingSchoolsOfACompany", DrivingSchoolServiceServer.RetrieveDrivingSchoolsOfACompany),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "drivingschool/v1/driving_school.proto",
}

// RegisterCompanyServiceServer は CompanyService をサーバーに登録します。
func RegisterCompanyServiceServer(s grpc.ServiceRegistrar, srv CompanyServiceServer) {
	s.RegisterService(&CompanyServiceDesc, srv)
}

// RegisterDrivingSchoolServiceServer は DrivingSchoolService をサーバーに登録します。
func RegisterDrivingSchoolServiceServer(s grpc.ServiceRegistrar, srv DrivingSchoolServiceServer) {
	s.RegisterService(&DrivingSchoolServiceDesc, srv)
}
