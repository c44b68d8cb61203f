package dto

import "github.com/brindez/controle-brindes/internal/domain/entity"

// NewItemResponse converte a entidade em DTO de saída.
func NewItemResponse(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Code:        i.Code,
		LogicalID:   i.LogicalID,
		Description: i.Description,
		Category:    i.Category,
		Unit:        i.Unit,
		Branch:      i.Branch,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		TotalValue:  i.TotalValue(),
		Notes:       i.Notes,
		CreatedBy:   i.CreatedBy,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// NewMovementResponse converte a entidade em DTO de saída.
func NewMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:                m.ID,
		TransactionID:     m.TransactionID,
		ItemID:            m.ItemID,
		Type:              m.Type,
		Quantity:          m.Quantity,
		User:              m.User,
		Justification:     m.Justification,
		Notes:             m.Notes,
		Destination:       m.Destination,
		OriginBranch:      m.OriginBranch,
		DestinationBranch: m.DestinationBranch,
		CreatedAt:         m.CreatedAt,
	}
}

// NewBranchResponse converte a entidade em DTO de saída.
func NewBranchResponse(b *entity.Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		Number:    b.Number,
		Name:      b.Name,
		City:      b.City,
		Address:   b.Address,
		Phone:     b.Phone,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// NewCategoryResponse converte a entidade em DTO de saída.
func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Active: c.Active, CreatedAt: c.CreatedAt}
}

// NewUnitResponse converte a entidade em DTO de saída.
func NewUnitResponse(u *entity.Unit) UnitResponse {
	return UnitResponse{ID: u.ID, Code: u.Code, Description: u.Description, Active: u.Active, CreatedAt: u.CreatedAt}
}

// NewSupplierResponse converte a entidade em DTO de saída.
func NewSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Code:        s.Code,
		Name:        s.Name,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		City:        s.City,
		State:       s.State,
		ZipCode:     s.ZipCode,
		CNPJ:        s.CNPJ,
		Notes:       s.Notes,
		Active:      s.Active,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// NewUserResponse converte a entidade em DTO de saída.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Branch:    u.Branch,
		Profile:   u.Profile,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
