package sale

type Article struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Employee struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type PaymentMethod struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Client struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Catalog is the reference data fetched once per capture session.
type Catalog struct {
	Articles       []Article
	Employees      []Employee
	PaymentMethods []PaymentMethod
}

func (c Catalog) Article(id uint) (Article, bool) {
	for _, a := range c.Articles {
		if a.ID == id {
			return a, true
		}
	}
	return Article{}, false
}
