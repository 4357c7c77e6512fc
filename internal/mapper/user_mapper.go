package mapper

import (
	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToModel(e *entity.User) *model.User {
	return &model.User{
		Id:           e.Id,
		Email:        e.Email,
		FullName:     e.FullName,
		PasswordHash: e.PasswordHash,
		GoogleId:     e.GoogleId,
		PictureURL:   e.PictureURL,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (m *UserMapper) ToEntity(mod *model.User) *entity.User {
	return &entity.User{
		Id:           mod.Id,
		Email:        mod.Email,
		FullName:     mod.FullName,
		PasswordHash: mod.PasswordHash,
		GoogleId:     mod.GoogleId,
		PictureURL:   mod.PictureURL,
		CreatedAt:    mod.CreatedAt,
		UpdatedAt:    mod.UpdatedAt,
	}
}
