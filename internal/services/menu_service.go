package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rp_admin_backend/internal/models"
	"rp_admin_backend/internal/repositories"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// CreateMenuItemRequest is the body of POST /menu.
type CreateMenuItemRequest struct {
	Category string `json:"category" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Price    int    `json:"price" binding:"required,gt=0"`
	Veg      bool   `json:"veg"`
}

type MenuService interface {
	ListMenu() ([]models.MenuItem, error)
	CreateMenuItem(req CreateMenuItemRequest) (*models.MenuItem, error)
	UpdateMenuItem(patch models.MenuItemPatch) error
}

type menuService struct {
	menuRepo repositories.MenuRepository
	db       *sql.DB
}

func NewMenuService(menuRepo repositories.MenuRepository, db *sql.DB) MenuService {
	return &menuService{menuRepo: menuRepo, db: db}
}

func (s *menuService) ListMenu() ([]models.MenuItem, error) {
	items, err := s.menuRepo.ListMenuItems()
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	return items, nil
}

func (s *menuService) CreateMenuItem(req CreateMenuItemRequest) (*models.MenuItem, error) {
	item := models.MenuItem{
		Category:  strings.TrimSpace(req.Category),
		Name:      strings.TrimSpace(req.Name),
		Price:     req.Price,
		Veg:       req.Veg,
		Available: true,
	}
	if item.Category == "" || item.Name == "" {
		return nil, fmt.Errorf("%w: category, name, price required", ErrValidation)
	}
	if _, err := s.menuRepo.CreateMenuItem(s.db, &item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return &item, nil
}

func (s *menuService) UpdateMenuItem(patch models.MenuItemPatch) error {
	if patch.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		return fmt.Errorf("%w: category cannot be empty", ErrValidation)
	}
	if err := s.menuRepo.UpdateMenuItem(s.db, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: id %d", ErrMenuItemNotFound, patch.ID)
		}
		return fmt.Errorf("failed to update menu item %d: %w", patch.ID, err)
	}
	return nil
}
