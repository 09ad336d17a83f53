package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	apdomain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/commission"
	saledomain "github.com/BruksfildServices01/salon-backoffice/internal/domain/sale"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

// Store keeps every table of the backoffice in process. It serves local
// runs without DATABASE_URL and the end-to-end tests.
type Store struct {
	mu sync.RWMutex

	appointments map[uint]models.Appointment
	sales        map[uint]models.Sale
	saleByKey    map[string]uint

	articles       []models.Article
	employees      []models.Employee
	employeeTypes  map[uint]models.EmployeeType
	paymentMethods []models.PaymentMethod
	clients        []models.Client
	auditLogs      []models.AuditLog

	nextAppointmentID uint
	nextSaleID        uint
	nextRowID         uint

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		appointments:  make(map[uint]models.Appointment),
		sales:         make(map[uint]models.Sale),
		saleByKey:     make(map[string]uint),
		employeeTypes: make(map[uint]models.EmployeeType),
		now:           time.Now,
	}
}

// ==================================================
// Seeding
// ==================================================

type Seed struct {
	Articles       []models.Article
	EmployeeTypes  []models.EmployeeType
	Employees      []models.Employee
	PaymentMethods []models.PaymentMethod
	Clients        []models.Client
	Appointments   []models.Appointment
}

func (s *Store) Seed(seed Seed) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.articles = append(s.articles, seed.Articles...)
	for _, t := range seed.EmployeeTypes {
		s.employeeTypes[t.ID] = t
	}
	s.employees = append(s.employees, seed.Employees...)
	s.paymentMethods = append(s.paymentMethods, seed.PaymentMethods...)
	s.clients = append(s.clients, seed.Clients...)

	for _, ap := range seed.Appointments {
		if ap.ID == 0 {
			s.nextAppointmentID++
			ap.ID = s.nextAppointmentID
		} else if ap.ID > s.nextAppointmentID {
			s.nextAppointmentID = ap.ID
		}
		s.appointments[ap.ID] = ap
	}
}

// DemoSeed is the catalog loaded by cmd/api in memory mode.
func DemoSeed() Seed {
	stylist := uint(1)
	assistant := uint(2)
	thirty := 30.0

	return Seed{
		EmployeeTypes: []models.EmployeeType{
			{ID: stylist, Name: "Stylist", CommissionPercent: &thirty},
			{ID: assistant, Name: "Assistant"},
		},
		Employees: []models.Employee{
			{ID: 1, Name: "Ana", Role: "Hair", EmployeeTypeID: &stylist, Active: true},
			{ID: 2, Name: "Bruno", Role: "Nails", EmployeeTypeID: &stylist, Active: true},
			{ID: 3, Name: "Carla", Role: "Reception", EmployeeTypeID: &assistant, Active: true},
		},
		Articles: []models.Article{
			{ID: 1, Name: "Haircut", Price: 45, Active: true},
			{ID: 2, Name: "Manicure", Price: 20, Active: true},
			{ID: 3, Name: "Shampoo", Price: 12.5, Active: true},
		},
		PaymentMethods: []models.PaymentMethod{
			{ID: 1, Name: "Cash", Active: true},
			{ID: 2, Name: "Card", Active: true},
		},
		Clients: []models.Client{
			{ID: 1, Name: "Maria", Phone: "555-0101"},
			{ID: 2, Name: "Joao", Phone: "555-0102"},
		},
	}
}

// ==================================================
// Appointments
// ==================================================

func (s *Store) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, apdomain.ErrNotFound
	}
	return &ap, nil
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAppointmentID++
	ap.ID = s.nextAppointmentID
	now := s.now()
	ap.CreatedAt = now
	ap.UpdatedAt = now
	if ap.Status == "" {
		ap.Status = string(apdomain.StatusScheduled)
	}
	s.appointments[ap.ID] = *ap
	return nil
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[ap.ID]; !ok {
		return apdomain.ErrNotFound
	}
	ap.UpdatedAt = s.now()
	s.appointments[ap.ID] = *ap
	return nil
}

func (s *Store) HasSaleForAppointment(_ context.Context, appointmentID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sl := range s.sales {
		if sl.AppointmentID != nil && *sl.AppointmentID == appointmentID {
			return true, nil
		}
	}
	return false, nil
}

// ==================================================
// Sales
// ==================================================

func (s *Store) CreateSale(_ context.Context, sl *models.Sale) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sl.IdempotencyKey != nil {
		if id, ok := s.saleByKey[*sl.IdempotencyKey]; ok {
			*sl = cloneSale(s.sales[id])
			return false, nil
		}
	}

	s.nextSaleID++
	sl.ID = s.nextSaleID
	sl.CreatedAt = s.now()
	for i := range sl.LineItems {
		s.nextRowID++
		sl.LineItems[i].ID = s.nextRowID
		sl.LineItems[i].SaleID = sl.ID
	}
	for i := range sl.Payments {
		s.nextRowID++
		sl.Payments[i].ID = s.nextRowID
		sl.Payments[i].SaleID = sl.ID
	}

	s.sales[sl.ID] = cloneSale(*sl)
	if sl.IdempotencyKey != nil {
		s.saleByKey[*sl.IdempotencyKey] = sl.ID
	}
	return true, nil
}

func (s *Store) ListSalesByAppointment(_ context.Context, appointmentID uint) ([]models.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Sale, 0)
	for _, sl := range s.sales {
		if sl.AppointmentID != nil && *sl.AppointmentID == appointmentID {
			out = append(out, cloneSale(sl))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneSale(in models.Sale) models.Sale {
	out := in
	out.LineItems = append([]models.SaleLineItem(nil), in.LineItems...)
	out.Payments = append([]models.Payment(nil), in.Payments...)
	return out
}

// ==================================================
// Catalog
// ==================================================

func (s *Store) ListArticles(context.Context) ([]models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) ListEmployees(context.Context) ([]models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) ListPaymentMethods(context.Context) ([]models.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PaymentMethod, 0, len(s.paymentMethods))
	for _, p := range s.paymentMethods {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) ListClients(context.Context) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Client(nil), s.clients...), nil
}

// ==================================================
// Commission feed
// ==================================================

// CommissionFeed buckets line items per employee per sale day, the same
// shape the SQL feed returns.
func (s *Store) CommissionFeed(_ context.Context, from, to time.Time) ([]commission.RawRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		employeeID uint
		bucket     string
	}
	type bucket struct {
		sales      decimal.Decimal
		commission decimal.Decimal
	}

	employees := make(map[uint]models.Employee, len(s.employees))
	for _, e := range s.employees {
		employees[e.ID] = e
	}

	sales := make([]models.Sale, 0, len(s.sales))
	for _, sl := range s.sales {
		if sl.SoldAt.Before(from) || !sl.SoldAt.Before(to) {
			continue
		}
		sales = append(sales, sl)
	}
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].SoldAt.Equal(sales[j].SoldAt) {
			return sales[i].ID < sales[j].ID
		}
		return sales[i].SoldAt.Before(sales[j].SoldAt)
	})

	order := make([]key, 0)
	buckets := make(map[key]*bucket)

	for _, sl := range sales {
		day := sl.SoldAt.Format("2006-01-02")
		for _, li := range sl.LineItems {
			emp, ok := employees[li.EmployeeID]
			if !ok {
				continue
			}
			k := key{employeeID: emp.ID, bucket: day}
			b, seen := buckets[k]
			if !seen {
				b = &bucket{}
				buckets[k] = b
				order = append(order, k)
			}

			amount := decimal.NewFromInt(int64(li.Quantity)).Mul(decimal.NewFromFloat(li.UnitPrice))
			b.sales = b.sales.Add(amount)
			if pct := s.percentFor(emp); pct != nil {
				b.commission = b.commission.Add(
					amount.Mul(decimal.NewFromFloat(*pct)).Div(decimal.NewFromInt(100)),
				)
			}
		}
	}

	out := make([]commission.RawRow, 0, len(order))
	for _, k := range order {
		emp := employees[k.employeeID]
		b := buckets[k]
		row := commission.RawRow{
			EmployeeID:        emp.ID,
			EmployeeName:      emp.Name,
			Role:              emp.Role,
			CommissionPercent: s.percentFor(emp),
			Bucket:            k.bucket,
			TotalSales:        b.sales.Round(2).StringFixed(2),
			TotalCommission:   b.commission.Round(2).StringFixed(2),
		}
		if emp.EmployeeTypeID != nil {
			row.EmployeeType = s.employeeTypes[*emp.EmployeeTypeID].Name
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *Store) percentFor(emp models.Employee) *float64 {
	if emp.EmployeeTypeID == nil {
		return nil
	}
	t, ok := s.employeeTypes[*emp.EmployeeTypeID]
	if !ok {
		return nil
	}
	return t.CommissionPercent
}

// ==================================================
// Audit
// ==================================================

func (s *Store) SaveAuditLog(_ context.Context, l models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.ID = uint(len(s.auditLogs) + 1)
	l.CreatedAt = s.now()
	s.auditLogs = append(s.auditLogs, l)
	return nil
}

func (s *Store) AuditLogs() []models.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.AuditLog(nil), s.auditLogs...)
}

var (
	_ apdomain.Repository          = (*Store)(nil)
	_ saledomain.Repository        = (*Store)(nil)
	_ saledomain.CatalogRepository = (*Store)(nil)
	_ commission.Repository        = (*Store)(nil)
)
