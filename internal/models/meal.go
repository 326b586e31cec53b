package models

type Ingredient struct {
	Name      string `json:"name"`
	Removable bool   `json:"removable"`
}

// Meal is a global catalog entry. Ingredients with Removable=false anchor the dish.
type Meal struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Type        MealType     `json:"type"`
	Calories    int          `json:"calories"`
	Protein     int          `json:"protein"`
	Carbs       int          `json:"carbs"`
	Fat         int          `json:"fat"`
	Ingredients []Ingredient `json:"ingredients"`
	ImageURL    string       `json:"image_url"`
	IsActive    bool         `json:"is_active"`
}

// Ingredient returns the named ingredient, if the meal has one.
func (m *Meal) Ingredient(name string) (Ingredient, bool) {
	for _, ing := range m.Ingredients {
		if ing.Name == name {
			return ing, true
		}
	}
	return Ingredient{}, false
}
