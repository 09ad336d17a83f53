package backoffice

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/httpresp"
)

func list[T any](ctx context.Context, c *Client, op, path string) ([]T, error) {
	req, err := c.request(ctx, op)
	if err != nil {
		return nil, err
	}

	var out httpresp.ListResponse[T]
	resp, err := req.SetResult(&out).Get(path)
	if err := c.check(op, resp, err); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) ListArticles(ctx context.Context) ([]sale.Article, error) {
	return list[sale.Article](ctx, c, "list articles", "/articles")
}

func (c *Client) ListEmployees(ctx context.Context) ([]sale.Employee, error) {
	return list[sale.Employee](ctx, c, "list employees", "/employees")
}

func (c *Client) ListPaymentMethods(ctx context.Context) ([]sale.PaymentMethod, error) {
	return list[sale.PaymentMethod](ctx, c, "list payment methods", "/payment-methods")
}

func (c *Client) ListClients(ctx context.Context) ([]sale.Client, error) {
	return list[sale.Client](ctx, c, "list clients", "/clients")
}

// LoadCatalog fetches the reference data a sale capture needs.
func (c *Client) LoadCatalog(ctx context.Context) (sale.Catalog, error) {
	articles, err := c.ListArticles(ctx)
	if err != nil {
		return sale.Catalog{}, err
	}
	employees, err := c.ListEmployees(ctx)
	if err != nil {
		return sale.Catalog{}, err
	}
	methods, err := c.ListPaymentMethods(ctx)
	if err != nil {
		return sale.Catalog{}, err
	}

	return sale.Catalog{
		Articles:       articles,
		Employees:      employees,
		PaymentMethods: methods,
	}, nil
}
