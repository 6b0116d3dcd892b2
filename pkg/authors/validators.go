package authors

type ListAuthorsQuery struct {
	Search *string `query:"search" json:"search,omitempty" validate:"omitnil,max=100"`
	Limit  *int    `query:"limit" json:"limit,omitempty" validate:"omitnil,min=1"`
	Offset *int    `query:"offset" json:"offset,omitempty" validate:"omitnil,min=0"`
}

type CreateAuthorPayload struct {
	Name string `json:"name" validate:"required,notblank,max=255"`
	Bio  string `json:"bio" validate:"required,notblank"`
}

type UpdateAuthorPayload struct {
	Name *string `json:"name,omitempty" validate:"omitnil,notblank,max=255"`
	Bio  *string `json:"bio,omitempty" validate:"omitnil,notblank"`
}
