package contract

const ExportFileName = "gratitude_entries.csv"

type GratitudeResponse struct {
	ID        int
	Content   string
	CreatedAt string
}

type GratitudeRequest struct {
	Content string `form:"content" validate:"max=250"`
}

// IndexView feeds index.html.
type IndexView struct {
	Entries      []*GratitudeResponse
	TotalEntries int64
}

// UpdateView feeds update.html.
type UpdateView struct {
	Entry *GratitudeResponse
}

type ExportFile struct {
	Name string
	Data []byte
}
