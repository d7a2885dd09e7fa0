package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tzgroups/internal/availability"
	"github.com/mmynk/tzgroups/internal/grouping"
	"github.com/mmynk/tzgroups/internal/middleware"
	"github.com/mmynk/tzgroups/internal/models"
	"github.com/mmynk/tzgroups/internal/strategy"
)

// GroupingService implements the Connect GroupingService.
type GroupingService struct {
	engine      *grouping.Engine
	defaultKind strategy.Kind
	now         func() time.Time
}

// NewGroupingService creates a GroupingService backed by engine. Requests
// without a strategy use defaultKind.
func NewGroupingService(engine *grouping.Engine, defaultKind strategy.Kind) *GroupingService {
	return &GroupingService{
		engine:      engine,
		defaultKind: defaultKind,
		now:         time.Now,
	}
}

// CreateGroups splits a roster of tokens into groups. Malformed tokens are
// dropped and counted, never rejected.
func (s *GroupingService) CreateGroups(ctx context.Context, req *connect.Request[CreateGroupsRequest]) (*connect.Response[CreateGroupsResponse], error) {
	slog.Info("CreateGroups request received",
		"request_id", middleware.GetRequestID(ctx),
		"tokens_count", len(req.Msg.Tokens),
		"group_size", req.Msg.GroupSize,
		"strategy", req.Msg.Strategy,
	)

	kind := s.defaultKind
	if req.Msg.Strategy != "" {
		var err error
		if kind, err = strategy.ParseKind(req.Msg.Strategy); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}

	res, err := s.engine.Run(grouping.Request{
		Tokens:    req.Msg.Tokens,
		GroupSize: req.Msg.GroupSize,
		Strategy:  kind,
		Seed:      req.Msg.Seed,
	})
	if err != nil {
		slog.Error("CreateGroups failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := NewCreateGroupsResponse(res)

	slog.Info("Groups created",
		"request_id", middleware.GetRequestID(ctx),
		"run_id", res.RunID,
		"groups_count", len(resp.Groups),
		"dropped", res.Dropped,
	)

	return connect.NewResponse(resp), nil
}

// NewCreateGroupsResponse converts an engine result into its wire form.
func NewCreateGroupsResponse(res grouping.Result) *CreateGroupsResponse {
	groups := make([]Group, len(res.Groups))
	for i, g := range res.Groups {
		groups[i] = Group{
			Members:        g.Members,
			SuggestedHours: g.SuggestedHours,
		}
		if i < len(res.Coverage) {
			groups[i].Coverage = res.Coverage[i]
		}
	}
	return &CreateGroupsResponse{
		Groups:   groups,
		Dropped:  res.Dropped,
		Strategy: res.Strategy.String(),
		Seed:     res.Seed,
		RunID:    res.RunID,
	}
}

// EncodePerson validates a person record and returns its token.
func (s *GroupingService) EncodePerson(ctx context.Context, req *connect.Request[EncodePersonRequest]) (*connect.Response[EncodePersonResponse], error) {
	p, err := models.NewPerson(req.Msg.Name, req.Msg.Timezone, req.Msg.Availability)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("encode person: %w", err))
	}
	return connect.NewResponse(&EncodePersonResponse{Token: p.Encode()}), nil
}

// DecodePerson returns the record behind a token, optionally with its
// availability rotated into another zone.
func (s *GroupingService) DecodePerson(ctx context.Context, req *connect.Request[DecodePersonRequest]) (*connect.Response[DecodePersonResponse], error) {
	p, err := models.DecodePerson(req.Msg.Token)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("decode person: %w", err))
	}

	resp := &DecodePersonResponse{
		Name:         p.Name(),
		Timezone:     p.Timezone(),
		Availability: p.Week().String(),
	}
	if req.Msg.ViewTimezone != "" {
		view, err := p.AvailabilityInAt(req.Msg.ViewTimezone, s.now())
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("view timezone: %w", err))
		}
		resp.ViewAvailability = view
	}
	return connect.NewResponse(resp), nil
}

// ListTimezones returns every timezone name a token may carry.
func (s *GroupingService) ListTimezones(ctx context.Context, req *connect.Request[ListTimezonesRequest]) (*connect.Response[ListTimezonesResponse], error) {
	return connect.NewResponse(&ListTimezonesResponse{Timezones: availability.Timezones()}), nil
}
