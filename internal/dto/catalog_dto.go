package dto

type CatalogChampion struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}
