package model

type LanguageCount struct {
	Language string `bson:"_id" json:"language"`
	Count    int    `bson:"count" json:"count"`
}

type TagCount struct {
	Tag   string `bson:"_id" json:"tag"`
	Count int    `bson:"count" json:"count"`
}

type UserStats struct {
	TotalNotes           int             `json:"totalNotes"`
	TotalSnippets        int             `json:"totalSnippets"`
	TotalFavorites       int             `json:"totalFavorites"`
	PublicNotes          int             `json:"publicNotes"`
	PrivateNotes         int             `json:"privateNotes"`
	RecentNotesLast7Days int             `json:"recentNotesLast7Days"`
	TopLanguages         []LanguageCount `json:"topLanguages"`
}
