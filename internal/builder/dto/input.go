package dto

import "github.com/tijara/storefront-service/internal/model"

type CreatePageInput struct {
	StoreID string
	Slug    string
	Title   model.LocalizedText
	Blocks  []model.ContentBlock
}

type UpdateBlockContentInput struct {
	StoreID string
	PageID  string
	BlockID string
	Lang    string
	Field   string
	Value   string
}

type UpdateBlockSettingsInput struct {
	StoreID  string
	PageID   string
	BlockID  string
	Settings map[string]interface{}
}
