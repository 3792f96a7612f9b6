package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/bpnlt/tv-planner/app/dto"
	"github.com/bpnlt/tv-planner/models"
	"github.com/bpnlt/tv-planner/repository"
	"gorm.io/gorm"
)

// ChannelGroupFlow defines channel group and channel administration operations
type ChannelGroupFlow interface {
	CreateChannelGroup(ctx context.Context, req *dto.CreateChannelGroupRequest) (*dto.ChannelGroupResponse, error)
	ListChannelGroups(ctx context.Context) ([]dto.ChannelGroupResponse, error)
	GetChannelGroup(ctx context.Context, id uint) (*dto.ChannelGroupResponse, error)
	DeleteChannelGroup(ctx context.Context, id uint) error

	AddChannel(ctx context.Context, req *dto.CreateChannelRequest) (*dto.ChannelResponse, error)
	DeleteChannel(ctx context.Context, id uint) error
}

// ChannelGroupFlowImpl implements ChannelGroupFlow
type ChannelGroupFlowImpl struct {
	groupRepo repository.ChannelGroupRepository
	db        *gorm.DB
}

// NewChannelGroupFlow constructs a ChannelGroupFlow
func NewChannelGroupFlow(groupRepo repository.ChannelGroupRepository, db *gorm.DB) ChannelGroupFlow {
	return &ChannelGroupFlowImpl{groupRepo: groupRepo, db: db}
}

// CreateChannelGroup registers a new channel group
func (f *ChannelGroupFlowImpl) CreateChannelGroup(ctx context.Context, req *dto.CreateChannelGroupRequest) (*dto.ChannelGroupResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewBusinessError("CHANNEL_GROUP_CREATE_FAILED", "Name is required", ErrNameRequired)
	}
	existing, err := f.groupRepo.ByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up channel group: %w", err)
	}
	if existing != nil {
		return nil, NewBusinessError("CHANNEL_GROUP_CREATE_FAILED", fmt.Sprintf("A channel group named %q already exists", name), ErrDuplicateName)
	}
	group := &models.ChannelGroup{Name: name}
	if err := f.groupRepo.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to save channel group: %w", err)
	}
	return f.toResponse(ctx, group)
}

// ListChannelGroups returns all channel groups with their channels
func (f *ChannelGroupFlowImpl) ListChannelGroups(ctx context.Context) ([]dto.ChannelGroupResponse, error) {
	groups, err := f.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel groups: %w", err)
	}
	out := make([]dto.ChannelGroupResponse, 0, len(groups))
	for _, group := range groups {
		resp, err := f.toResponse(ctx, group)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// GetChannelGroup returns one channel group with its channels
func (f *ChannelGroupFlowImpl) GetChannelGroup(ctx context.Context, id uint) (*dto.ChannelGroupResponse, error) {
	group, err := f.groupRepo.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load channel group: %w", err)
	}
	if group == nil {
		return nil, NewBusinessError("CHANNEL_GROUP_GET_FAILED", "Channel group not found", ErrChannelGroupNotFound)
	}
	return f.toResponse(ctx, group)
}

// DeleteChannelGroup removes a group together with its channels, legacy rates
// and indices
func (f *ChannelGroupFlowImpl) DeleteChannelGroup(ctx context.Context, id uint) error {
	group, err := f.groupRepo.ByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load channel group: %w", err)
	}
	if group == nil {
		return NewBusinessError("CHANNEL_GROUP_DELETE_FAILED", "Channel group not found", ErrChannelGroupNotFound)
	}
	return f.groupRepo.DeleteCascade(ctx, id)
}

// AddChannel adds a channel to a group
func (f *ChannelGroupFlowImpl) AddChannel(ctx context.Context, req *dto.CreateChannelRequest) (*dto.ChannelResponse, error) {
	group, err := f.groupRepo.ByID(ctx, req.ChannelGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load channel group: %w", err)
	}
	if group == nil {
		return nil, NewBusinessError("CHANNEL_CREATE_FAILED", "Channel group not found", ErrChannelGroupNotFound)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewBusinessError("CHANNEL_CREATE_FAILED", "Name is required", ErrNameRequired)
	}
	size := models.ChannelSize(req.Size)
	if !size.Valid() {
		return nil, NewBusinessError("CHANNEL_CREATE_FAILED", "Size must be big or small", ErrInvalidInput)
	}
	channel := &models.Channel{
		ChannelGroupID: group.ID,
		Name:           name,
		Size:           size,
	}
	if err := f.groupRepo.SaveChannel(ctx, channel); err != nil {
		return nil, fmt.Errorf("failed to save channel: %w", err)
	}
	return &dto.ChannelResponse{ID: channel.ID, Name: channel.Name, Size: channel.Size.String()}, nil
}

// DeleteChannel removes one channel
func (f *ChannelGroupFlowImpl) DeleteChannel(ctx context.Context, id uint) error {
	channel, err := f.groupRepo.ChannelByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load channel: %w", err)
	}
	if channel == nil {
		return NewBusinessError("CHANNEL_DELETE_FAILED", "Channel not found", ErrChannelNotFound)
	}
	return f.groupRepo.DeleteChannel(ctx, id)
}

func (f *ChannelGroupFlowImpl) toResponse(ctx context.Context, group *models.ChannelGroup) (*dto.ChannelGroupResponse, error) {
	channels, err := f.groupRepo.ListChannels(ctx, &group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	resp := &dto.ChannelGroupResponse{
		ID:       group.ID,
		Name:     group.Name,
		Channels: make([]dto.ChannelResponse, 0, len(channels)),
	}
	for _, ch := range channels {
		resp.Channels = append(resp.Channels, dto.ChannelResponse{
			ID:   ch.ID,
			Name: ch.Name,
			Size: ch.Size.String(),
		})
	}
	return resp, nil
}
