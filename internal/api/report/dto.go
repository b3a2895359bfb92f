package report

type MonthlyReportQuery struct {
	WorkplaceID string `query:"workplace_id" validate:"required"`
	Year        int    `query:"year" validate:"required,min=1"`
	Month       int    `query:"month" validate:"required,min=1,max=12"`
	OwnerID     string `query:"-"`
	OwnerEmail  string `query:"-"`
}

type AnnualReportQuery struct {
	WorkplaceID string `query:"workplace_id" validate:"required"`
	Year        int    `query:"year" validate:"required,min=1"`
	OwnerID     string `query:"-"`
	OwnerEmail  string `query:"-"`
}

// CustomReportQuery covers the inclusive days From..To, both YYYY-MM-DD.
type CustomReportQuery struct {
	WorkplaceID string `query:"workplace_id" validate:"required"`
	From        string `query:"from" validate:"required,datetime=2006-01-02"`
	To          string `query:"to" validate:"required,datetime=2006-01-02"`
	OwnerID     string `query:"-"`
	OwnerEmail  string `query:"-"`
}
