package mapper

import (
	"event-registry/modules/room/dto"
	"event-registry/modules/room/entity"
)

func ToRoomResponse(r *entity.Room) *dto.RoomResponse {
	if r == nil {
		return nil
	}
	return &dto.RoomResponse{
		ID:               r.ID.String(),
		RoomNumber:       r.RoomNumber,
		MaxCapacity:      r.MaxCapacity,
		CurrentOccupancy: r.CurrentOccupancy,
		Gender:           r.Gender,
		RoomType:         r.RoomType,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func ToRoomPaginationResponse(page *entity.PaginatedRooms) *dto.PaginatedRoomResponse {
	items := make([]dto.RoomResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToRoomResponse(&page.Items[i]))
	}
	return &dto.PaginatedRoomResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
