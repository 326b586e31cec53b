package services

import "github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/models"

const (
	defaultMealDescription = "Món mới của đầu bếp."
	defaultMealImageURL    = "https://picsum.photos/400/300"
	defaultMealIngredient  = "Thành phần cơ bản"
)

// seedMeals returns a fresh copy of the built-in catalog.
func seedMeals() []models.Meal {
	return []models.Meal{
		{
			ID:          "m1",
			Name:        "Ức Gà Nướng & Quinoa",
			Description: "Ức gà nướng thảo mộc ăn kèm hạt Quinoa, bông cải xanh và sốt chanh leo ít béo.",
			Type:        models.MealFitPlus,
			Calories:    650, Protein: 55, Carbs: 60, Fat: 15,
			Ingredients: []models.Ingredient{
				{Name: "Ức Gà", Removable: false},
				{Name: "Hạt Quinoa", Removable: false},
				{Name: "Bông Cải", Removable: true},
				{Name: "Sốt Chanh", Removable: true},
			},
			ImageURL: "https://i.blogs.es/b785a7/pollo-brocoli-quinoa-naranja/1366_521.jpg",
			IsActive: true,
		},
		{
			ID:          "m2",
			Name:        "Cá Hồi Áp Chảo Măng Tây",
			Description: "Phi lê cá hồi áp chảo dùng kèm măng tây hấp và cơm gạo lứt.",
			Type:        models.MealFitMinus,
			Calories:    450, Protein: 35, Carbs: 30, Fat: 18,
			Ingredients: []models.Ingredient{
				{Name: "Cá Hồi", Removable: false},
				{Name: "Măng Tây", Removable: true},
				{Name: "Gạo Lứt", Removable: false},
			},
			ImageURL: "https://gofood.vn//upload/r/tong-hop-tin-tuc/huong-dan-mon-ngon/ca-hoi-ap-chao-mang-tay-chanh-leo.jpg",
			IsActive: true,
		},
		{
			ID:          "m3",
			Name:        "Bò Xào Lúc Lắc Healthy",
			Description: "Thịt bò nạc cắt khối xào với ớt chuông, đậu hà lan và sốt tương ít muối.",
			Type:        models.MealFitPlus,
			Calories:    700, Protein: 60, Carbs: 65, Fat: 20,
			Ingredients: []models.Ingredient{
				{Name: "Thịt Bò", Removable: false},
				{Name: "Ớt Chuông", Removable: true},
				{Name: "Sốt Tương", Removable: true},
			},
			ImageURL: "https://i.ytimg.com/vi/7J9p8w0MadY/hq720.jpg",
			IsActive: true,
		},
		{
			ID:          "m4",
			Name:        "Cơm Chay Buddha Bowl",
			Description: "Đậu gà, khoai lang nướng, cải xoăn và bơ sáp Đà Lạt sốt mè.",
			Type:        models.MealFitMinus,
			Calories:    400, Protein: 15, Carbs: 50, Fat: 18,
			Ingredients: []models.Ingredient{
				{Name: "Đậu Gà", Removable: false},
				{Name: "Quả Bơ", Removable: true},
				{Name: "Sốt Mè", Removable: true},
			},
			ImageURL: "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcRTMFKL8kvBlN12h1esZ8MZjR6A9uBcDxL7yw&s",
			IsActive: true,
		},
		{
			ID:          "m5",
			Name:        "Xíu Mại Gà & Mì Bí Ngòi",
			Description: "Viên gà xíu mại handmade ăn kèm mì bí ngòi (zoodles) và sốt cà chua tươi.",
			Type:        models.MealFitMinus,
			Calories:    380, Protein: 40, Carbs: 15, Fat: 12,
			Ingredients: []models.Ingredient{
				{Name: "Thịt Gà", Removable: false},
				{Name: "Bí Ngòi", Removable: false},
				{Name: "Sốt Cà Chua", Removable: true},
			},
			ImageURL: "https://giadinh.mediacdn.vn/zoom/740_463/2020/12/24/photo-1-16087844017321074827329-crop-16087844542601654302662.jpg",
			IsActive: true,
		},
		{
			ID:          "m6",
			Name:        "Bít Tết & Khoai Lang Nghiền",
			Description: "Thăn bò nướng vừa chín tới ăn kèm khoai lang nghiền mịn và đậu que.",
			Type:        models.MealFitPlus,
			Calories:    750, Protein: 65, Carbs: 55, Fat: 25,
			Ingredients: []models.Ingredient{
				{Name: "Thăn Bò", Removable: false},
				{Name: "Khoai Lang", Removable: false},
				{Name: "Bơ Lạt", Removable: true},
			},
			ImageURL: "https://media3.bosch-home.com/Images/600x/MCIM02490132_CB116-MD-GrilledSteakandSides.jpg",
			IsActive: true,
		},
	}
}
