package dto

import (
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

func Articles(in []models.Article) []sale.Article {
	out := make([]sale.Article, 0, len(in))
	for _, a := range in {
		out = append(out, sale.Article{ID: a.ID, Name: a.Name, Price: a.Price})
	}
	return out
}

func Employees(in []models.Employee) []sale.Employee {
	out := make([]sale.Employee, 0, len(in))
	for _, e := range in {
		out = append(out, sale.Employee{ID: e.ID, Name: e.Name, Role: e.Role})
	}
	return out
}

func PaymentMethods(in []models.PaymentMethod) []sale.PaymentMethod {
	out := make([]sale.PaymentMethod, 0, len(in))
	for _, p := range in {
		out = append(out, sale.PaymentMethod{ID: p.ID, Name: p.Name})
	}
	return out
}

func Clients(in []models.Client) []sale.Client {
	out := make([]sale.Client, 0, len(in))
	for _, c := range in {
		out = append(out, sale.Client{ID: c.ID, Name: c.Name, Phone: c.Phone})
	}
	return out
}
