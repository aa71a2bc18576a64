package model

// Direction says which end of a category is better.
type Direction int

// Sort directions.
const (
	// Descending ranks the largest value first.
	Descending Direction = iota
	// Ascending ranks the smallest value first.
	Ascending
)

// CategoryID indexes the scoring categories.
type CategoryID int

// Scoring categories, in scoring order.
const (
	CatFGPct CategoryID = iota
	CatFTPct
	Cat3P
	CatSTL
	CatAST
	CatTRB
	CatTOV
	CatBLK
	CatPTS

	NumCategories = int(iota)
)

// Category describes one roto scoring category.
type Category struct {
	ID        CategoryID
	Name      string
	Direction Direction
}

var categories = [NumCategories]Category{
	{ID: CatFGPct, Name: "FG%", Direction: Descending},
	{ID: CatFTPct, Name: "FT%", Direction: Descending},
	{ID: Cat3P, Name: "3P", Direction: Descending},
	{ID: CatSTL, Name: "STL", Direction: Descending},
	{ID: CatAST, Name: "AST", Direction: Descending},
	{ID: CatTRB, Name: "TRB", Direction: Descending},
	{ID: CatTOV, Name: "TOV", Direction: Ascending},
	{ID: CatBLK, Name: "BLK", Direction: Descending},
	{ID: CatPTS, Name: "PTS", Direction: Descending},
}

// Categories returns the scoring categories in scoring order.
func Categories() []Category {
	out := make([]Category, NumCategories)
	copy(out, categories[:])
	return out
}

// String returns the category name.
func (c CategoryID) String() string {
	if c < 0 || int(c) >= NumCategories {
		return "unknown"
	}
	return categories[c].Name
}
