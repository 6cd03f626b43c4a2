package model

// Category — категория расхода из закрытого набора
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryBills         Category = "bills"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryHealthcare    Category = "healthcare"
	CategoryEducation     Category = "education"
	CategoryOther         Category = "other"
)

// Categories возвращает полный набор категорий в порядке отображения
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryBills,
		CategoryShopping,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryEducation,
		CategoryOther,
	}
}

var categoryIcons = map[Category]string{
	CategoryFood:          "🍽️",
	CategoryTransport:     "🚗",
	CategoryBills:         "📋",
	CategoryShopping:      "🛍️",
	CategoryEntertainment: "🎬",
	CategoryHealthcare:    "🏥",
	CategoryEducation:     "📚",
	CategoryOther:         "📝",
}

// Known сообщает, входит ли категория в закрытый набор.
// Неизвестные категории не отклоняются, а лишь получают иконку и цвет "other".
func (c Category) Known() bool {
	_, ok := categoryIcons[c]
	return ok
}

// Icon возвращает иконку категории; для неизвестных — иконку "other"
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return categoryIcons[CategoryOther]
}
