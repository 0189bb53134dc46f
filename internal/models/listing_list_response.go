package models

type ProviderListResponse struct {
	Providers []Provider `json:"providers"`
	Page      int        `json:"page"`
	Size      int        `json:"size"`
	Total     int64      `json:"total"`
}

type HallListResponse struct {
	Halls []Hall `json:"halls"`
	Page  int    `json:"page"`
	Size  int    `json:"size"`
	Total int64  `json:"total"`
}

type DressListResponse struct {
	Dresses []Dress `json:"dresses"`
	Page    int     `json:"page"`
	Size    int     `json:"size"`
	Total   int64   `json:"total"`
}
