package repositories

import (
	"weddingChat/internal/models"
	"weddingChat/internal/utils"

	"gorm.io/gorm"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{
		db: db,
	}
}

func (lr *ListingRepository) CheckProviderExists(providerID uint) bool {
	var count int64
	lr.db.Model(&models.Provider{}).Where("id = ?", providerID).Count(&count)
	return count > 0
}

func (lr *ListingRepository) CheckHallExists(hallID uint) bool {
	var count int64
	lr.db.Model(&models.Hall{}).Where("id = ?", hallID).Count(&count)
	return count > 0
}

func (lr *ListingRepository) CheckDressExists(dressID uint) bool {
	var count int64
	lr.db.Model(&models.Dress{}).Where("id = ?", dressID).Count(&count)
	return count > 0
}

func (lr *ListingRepository) GetProviders(page, size int) (*models.ProviderListResponse, []error) {
	var errors []error
	var providers []models.Provider
	var total int64

	if err := lr.db.Model(&models.Provider{}).Count(&total).Error; err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	if err := lr.db.Scopes(utils.Paginate(page, size)).Find(&providers).Error; err != nil {
		errors = append(errors, err)
		return nil, errors
	}

	return &models.ProviderListResponse{
		Providers: providers,
		Page:      page,
		Size:      size,
		Total:     total,
	}, nil
}

func (lr *ListingRepository) GetHalls(page, size int) (*models.HallListResponse, []error) {
	var errors []error
	var halls []models.Hall
	var total int64

	if err := lr.db.Model(&models.Hall{}).Count(&total).Error; err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	if err := lr.db.Scopes(utils.Paginate(page, size)).Find(&halls).Error; err != nil {
		errors = append(errors, err)
		return nil, errors
	}

	return &models.HallListResponse{
		Halls: halls,
		Page:  page,
		Size:  size,
		Total: total,
	}, nil
}

func (lr *ListingRepository) GetDresses(page, size int) (*models.DressListResponse, []error) {
	var errors []error
	var dresses []models.Dress
	var total int64

	if err := lr.db.Model(&models.Dress{}).Count(&total).Error; err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	if err := lr.db.Scopes(utils.Paginate(page, size)).Find(&dresses).Error; err != nil {
		errors = append(errors, err)
		return nil, errors
	}

	return &models.DressListResponse{
		Dresses: dresses,
		Page:    page,
		Size:    size,
		Total:   total,
	}, nil
}
