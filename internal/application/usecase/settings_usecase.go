package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/bodega-ledger/internal/application/dto"
	"github.com/jhoicas/bodega-ledger/internal/domain"
	"github.com/jhoicas/bodega-ledger/internal/domain/entity"
	"github.com/jhoicas/bodega-ledger/internal/domain/repository"
	"github.com/jhoicas/bodega-ledger/pkg/validator"
)

// SettingsValidationError configuración rechazada; Fields lista los campos inválidos.
type SettingsValidationError struct {
	Fields []validator.FieldError
}

func (e *SettingsValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field+":"+f.Tag)
	}
	return fmt.Sprintf("%s: %s", domain.ErrInvalidInput, strings.Join(names, ", "))
}

func (e *SettingsValidationError) Unwrap() error { return domain.ErrInvalidInput }

// SettingsUseCase configuración de la bodega (onboarding). Sin registro guardado se usan los defaults.
type SettingsUseCase struct {
	repo     repository.SettingsRepository
	defaults entity.Settings
}

// NewSettingsUseCase construye el caso de uso con los valores por defecto de la configuración.
func NewSettingsUseCase(repo repository.SettingsRepository, bodega, currency string) *SettingsUseCase {
	return &SettingsUseCase{
		repo: repo,
		defaults: entity.Settings{
			Bodega:    bodega,
			Currency:  currency,
			Operators: []string{},
			Columns:   append([]string(nil), entity.InventoryColumns...),
		},
	}
}

// Current configuración vigente.
func (uc *SettingsUseCase) Current(ctx context.Context) (*entity.Settings, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		d := uc.defaults
		d.Operators = append([]string{}, uc.defaults.Operators...)
		d.Columns = append([]string(nil), uc.defaults.Columns...)
		return &d, nil
	}
	return s, nil
}

// Save normaliza, valida y guarda. Columnas vacías equivalen a todas.
func (uc *SettingsUseCase) Save(ctx context.Context, in dto.SettingsRequest) (*entity.Settings, error) {
	s := &entity.Settings{
		Bodega:    strings.TrimSpace(in.Bodega),
		Currency:  strings.ToUpper(strings.TrimSpace(in.Currency)),
		Operators: make([]string, 0, len(in.Operators)),
		Columns:   make([]string, 0, len(in.Columns)),
	}
	for _, op := range in.Operators {
		if op = strings.TrimSpace(op); op != "" {
			s.Operators = append(s.Operators, op)
		}
	}
	for _, c := range in.Columns {
		s.Columns = append(s.Columns, strings.TrimSpace(c))
	}
	if len(s.Columns) == 0 {
		s.Columns = append(s.Columns, entity.InventoryColumns...)
	}
	if fields := validator.ValidateStruct(s); len(fields) > 0 {
		return nil, &SettingsValidationError{Fields: fields}
	}
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
