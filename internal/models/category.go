package models

// Category — тег темы из фиксированного набора.
type Category string

const (
	CategorySports        Category = "Sports"
	CategoryPolitics      Category = "Politics"
	CategorySpace         Category = "Space"
	CategoryTechnology    Category = "Technology"
	CategoryHealth        Category = "Health"
	CategoryEntertainment Category = "Entertainment"
	CategoryBusiness      Category = "Business"
	CategoryScience       Category = "Science"
)

// Categories — полный допустимый набор категорий.
var Categories = []Category{
	CategorySports,
	CategoryPolitics,
	CategorySpace,
	CategoryTechnology,
	CategoryHealth,
	CategoryEntertainment,
	CategoryBusiness,
	CategoryScience,
}

// Valid сообщает, входит ли категория в фиксированный набор.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}
