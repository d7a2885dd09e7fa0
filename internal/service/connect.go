package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// GroupingServiceName is the fully-qualified name of the grouping service.
const GroupingServiceName = "tzgroups.v1.GroupingService"

// Procedure paths, relative to the server's base URL.
const (
	CreateGroupsProcedure  = "/" + GroupingServiceName + "/CreateGroups"
	EncodePersonProcedure  = "/" + GroupingServiceName + "/EncodePerson"
	DecodePersonProcedure  = "/" + GroupingServiceName + "/DecodePerson"
	ListTimezonesProcedure = "/" + GroupingServiceName + "/ListTimezones"
)

// NewGroupingServiceHandler builds an HTTP handler for svc and returns the
// path prefix to mount it on. The JSON codec is always installed.
func NewGroupingServiceHandler(svc *GroupingService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CreateGroupsProcedure, connect.NewUnaryHandler(CreateGroupsProcedure, svc.CreateGroups, opts...))
	mux.Handle(EncodePersonProcedure, connect.NewUnaryHandler(EncodePersonProcedure, svc.EncodePerson, opts...))
	mux.Handle(DecodePersonProcedure, connect.NewUnaryHandler(DecodePersonProcedure, svc.DecodePerson, opts...))
	mux.Handle(ListTimezonesProcedure, connect.NewUnaryHandler(ListTimezonesProcedure, svc.ListTimezones, opts...))
	return "/" + GroupingServiceName + "/", mux
}

// GroupingServiceClient calls a remote GroupingService.
type GroupingServiceClient struct {
	createGroups  *connect.Client[CreateGroupsRequest, CreateGroupsResponse]
	encodePerson  *connect.Client[EncodePersonRequest, EncodePersonResponse]
	decodePerson  *connect.Client[DecodePersonRequest, DecodePersonResponse]
	listTimezones *connect.Client[ListTimezonesRequest, ListTimezonesResponse]
}

// NewGroupingServiceClient creates a client for the service at baseURL, for
// example http://localhost:8080.
func NewGroupingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupingServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &GroupingServiceClient{
		createGroups:  connect.NewClient[CreateGroupsRequest, CreateGroupsResponse](httpClient, baseURL+CreateGroupsProcedure, opts...),
		encodePerson:  connect.NewClient[EncodePersonRequest, EncodePersonResponse](httpClient, baseURL+EncodePersonProcedure, opts...),
		decodePerson:  connect.NewClient[DecodePersonRequest, DecodePersonResponse](httpClient, baseURL+DecodePersonProcedure, opts...),
		listTimezones: connect.NewClient[ListTimezonesRequest, ListTimezonesResponse](httpClient, baseURL+ListTimezonesProcedure, opts...),
	}
}

func (c *GroupingServiceClient) CreateGroups(ctx context.Context, req *connect.Request[CreateGroupsRequest]) (*connect.Response[CreateGroupsResponse], error) {
	return c.createGroups.CallUnary(ctx, req)
}

func (c *GroupingServiceClient) EncodePerson(ctx context.Context, req *connect.Request[EncodePersonRequest]) (*connect.Response[EncodePersonResponse], error) {
	return c.encodePerson.CallUnary(ctx, req)
}

func (c *GroupingServiceClient) DecodePerson(ctx context.Context, req *connect.Request[DecodePersonRequest]) (*connect.Response[DecodePersonResponse], error) {
	return c.decodePerson.CallUnary(ctx, req)
}

func (c *GroupingServiceClient) ListTimezones(ctx context.Context, req *connect.Request[ListTimezonesRequest]) (*connect.Response[ListTimezonesResponse], error) {
	return c.listTimezones.CallUnary(ctx, req)
}
