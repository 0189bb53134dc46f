package services

import (
	"weddingChat/internal/models"
	"weddingChat/internal/repositories"
)

type ListingService struct {
	listingRepo *repositories.ListingRepository
}

func NewListingService(listingRepo *repositories.ListingRepository) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
	}
}

func (ls *ListingService) GetProviders(page, size int) (*models.ProviderListResponse, []error) {
	return ls.listingRepo.GetProviders(page, size)
}

func (ls *ListingService) GetHalls(page, size int) (*models.HallListResponse, []error) {
	return ls.listingRepo.GetHalls(page, size)
}

func (ls *ListingService) GetDresses(page, size int) (*models.DressListResponse, []error) {
	return ls.listingRepo.GetDresses(page, size)
}
