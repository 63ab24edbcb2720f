package mapper

import (
	"event-registry/modules/group/dto"
	"event-registry/modules/group/entity"
)

func ToGroupResponse(g *entity.Group) *dto.GroupResponse {
	if g == nil {
		return nil
	}
	return &dto.GroupResponse{
		ID:               g.ID.String(),
		Name:             g.Name,
		ParticipantCount: g.ParticipantCount,
		ExpectedCapacity: g.ExpectedCapacity,
		Tags:             g.Tags,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
}

func ToGroupPaginationResponse(page *entity.PaginatedGroups) *dto.PaginatedGroupResponse {
	items := make([]dto.GroupResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToGroupResponse(&page.Items[i]))
	}
	return &dto.PaginatedGroupResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
