package backoffice

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
)

func (c *Client) GetAppointment(ctx context.Context, id uint) (appointment.Appointment, error) {
	const op = "get appointment"

	req, err := c.request(ctx, op)
	if err != nil {
		return appointment.Appointment{}, err
	}

	var out appointment.Appointment
	resp, err := req.
		SetPathParam("id", idParam(id)).
		SetResult(&out).
		Get("/appointments/{id}")
	if err := c.check(op, resp, err); err != nil {
		return appointment.Appointment{}, err
	}
	return out.Persisted(), nil
}

func (c *Client) CreateAppointment(ctx context.Context, ap appointment.Appointment) (appointment.Appointment, error) {
	const op = "create appointment"

	req, err := c.request(ctx, op)
	if err != nil {
		return appointment.Appointment{}, err
	}

	var out appointment.Appointment
	resp, err := req.
		SetBody(ap).
		SetResult(&out).
		Post("/appointments")
	if err := c.check(op, resp, err); err != nil {
		return appointment.Appointment{}, err
	}
	return out.Persisted(), nil
}

func (c *Client) UpdateAppointment(ctx context.Context, ap appointment.Appointment) (appointment.Appointment, error) {
	const op = "update appointment"

	req, err := c.request(ctx, op)
	if err != nil {
		return appointment.Appointment{}, err
	}

	var out appointment.Appointment
	resp, err := req.
		SetPathParam("id", idParam(*ap.ID)).
		SetBody(ap).
		SetResult(&out).
		Put("/appointments/{id}")
	if err := c.check(op, resp, err); err != nil {
		return appointment.Appointment{}, err
	}
	return out.Persisted(), nil
}

// UpdateAppointmentStatus writes only the status, through the dedicated
// status endpoint.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id uint, status appointment.Status) error {
	const op = "update appointment status"

	req, err := c.request(ctx, op)
	if err != nil {
		return err
	}

	resp, err := req.
		SetPathParam("id", idParam(id)).
		SetBody(map[string]string{"status": string(status)}).
		Put("/appointments/{id}/status")
	return c.check(op, resp, err)
}
