package repository

import (
	"context"
	"errors"

	apperror "simplifique/internal/errors"
	"simplifique/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByUsername(ctx context.Context, username string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
	Desativar(ctx context.Context, id uuid.UUID) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return apperror.NewPersistencia("criar usuário", err)
	}
	return nil
}

func (r *usuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("username = ? AND ativo = true", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNaoEncontrado("usuário", username)
	}
	if err != nil {
		return nil, apperror.NewPersistencia("buscar usuário", err)
	}
	return &u, nil
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNaoEncontrado("usuário", id)
	}
	if err != nil {
		return nil, apperror.NewPersistencia("buscar usuário", err)
	}
	return &u, nil
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).Where("ativo = true").Order("username ASC").Find(&usuarios).Error
	if err != nil {
		return nil, apperror.NewPersistencia("listar usuários", err)
	}
	return usuarios, nil
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		return apperror.NewPersistencia("atualizar usuário", err)
	}
	return nil
}

func (r *usuarioRepo) Desativar(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).Update("ativo", false)
	if res.Error != nil {
		return apperror.NewPersistencia("desativar usuário", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NewNaoEncontrado("usuário", id)
	}
	return nil
}
