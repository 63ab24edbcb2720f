package mapper

import (
	"event-registry/modules/participant/dto"
	"event-registry/modules/participant/entity"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ToParticipantResponse(p *entity.Participant, checkIns []entity.CheckIn) *dto.ParticipantResponse {
	if p == nil {
		return nil
	}

	resp := &dto.ParticipantResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		Email:      p.Email,
		Phone:      deref(p.Phone),
		Gender:     deref(p.Gender),
		Age:        p.Age,
		Ward:       deref(p.Ward),
		Stake:      deref(p.Stake),
		GroupName:  deref(p.GroupName),
		RoomNumber: deref(p.RoomNumber),
		IsPaid:     p.IsPaid,
		Metadata:   p.Metadata,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.GroupID != nil {
		resp.GroupID = p.GroupID.String()
	}
	if p.RoomID != nil {
		resp.RoomID = p.RoomID.String()
	}
	for _, c := range checkIns {
		resp.CheckIns = append(resp.CheckIns, dto.CheckInResponse{
			ID:           c.ID,
			CheckInTime:  c.CheckInTime,
			CheckOutTime: c.CheckOutTime,
		})
	}
	return resp
}

func ToParticipantEntity(req *dto.CreateParticipantRequest) *entity.Participant {
	p := &entity.Participant{
		Name:   req.Name,
		Email:  req.Email,
		Age:    req.Age,
		IsPaid: req.IsPaid,
	}
	if req.Phone != "" {
		p.Phone = &req.Phone
	}
	if req.Gender != "" {
		p.Gender = &req.Gender
	}
	if req.Ward != "" {
		p.Ward = &req.Ward
	}
	if req.Stake != "" {
		p.Stake = &req.Stake
	}
	return p
}

func ToParticipantPaginationResponse(page *entity.PaginatedParticipants) *dto.PaginatedParticipantResponse {
	items := make([]dto.ParticipantResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToParticipantResponse(&page.Items[i], nil))
	}
	return &dto.PaginatedParticipantResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
