// Package logbook fills pilot logbook drafts against the SINTAC portal: it
// resolves the authenticated pilot's logbook id, looks up aircraft rating
// data, and submits validated entries through an authenticated session.
package logbook

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dbarbosa/libanac/internal/common"
	"github.com/dbarbosa/libanac/internal/models"
	"github.com/dbarbosa/libanac/internal/session"
)

const (
	newEntryPath = "/SACI/CIV/Digital/incluir.asp"
	aircraftPath = "/SACI/CIV/Digital/buscaHabilitacaoXML.asp"
	maintainPath = "/SACI/CIV/Digital/manter.asp"
)

// pilotIDField is the hidden input on the new-entry form carrying the
// pilot's logbook id.
const pilotIDField = "ID_AERONAUTA"

// Client submits logbook drafts for one authenticated pilot.
type Client struct {
	session *session.Session
	pilotID string
}

// New resolves the authenticated pilot's logbook id and returns a client
// bound to the session.
func New(ctx context.Context, sess *session.Session) (*Client, error) {
	c := &Client{session: sess}

	id, err := c.resolvePilotID(ctx)
	if err != nil {
		return nil, err
	}
	c.pilotID = id
	return c, nil
}

// PilotID returns the logbook id resolved at construction.
func (c *Client) PilotID() string {
	return c.pilotID
}

func (c *Client) resolvePilotID(ctx context.Context) (string, error) {
	body, err := c.session.Do(ctx, http.MethodGet, newEntryPath, nil)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	id := strings.TrimSpace(doc.Find(`input[name=` + pilotIDField + `]`).First().AttrOr("value", ""))
	if !isDigits(id) {
		return "", common.ErrPilotIDNotFound
	}
	return id, nil
}

// Aircraft looks up class and airworthiness data for a registration. The
// portal answers XML whose first result element's children form the
// attribute mapping.
func (c *Client) Aircraft(ctx context.Context, registration string) (models.AircraftInfo, error) {
	reg := strings.ReplaceAll(registration, "-", "")

	body, err := c.session.Do(ctx, http.MethodGet, aircraftPath, url.Values{"CD_MARCA": {reg}})
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	// A missing result element and an empty one both mean no such
	// registration; an empty mapping must never reach SubmitDraft.
	el := doc.Find("elementos elemento").First()
	if el.Children().Length() == 0 {
		return nil, common.ErrAircraftNotFound
	}

	info := models.AircraftInfo{}
	el.Children().Each(func(_ int, child *goquery.Selection) {
		info[strings.ToLower(goquery.NodeName(child))] = strings.TrimSpace(child.Text())
	})
	return info, nil
}

// SubmitDraft validates and normalizes the draft, checks the aircraft
// category gate, and files the entry. Validation happens before any network
// call; a draft for an airline-operated aircraft is rejected without
// issuing the submission request. The portal confirms acceptance through
// the same alert channel it uses for failures, so only a signal carrying
// the known success message counts as accepted; no signal at all is also
// success.
func (c *Client) SubmitDraft(ctx context.Context, draft models.Draft) error {
	d, err := draft.Normalize()
	if err != nil {
		return err
	}

	acft, err := c.Aircraft(ctx, d.Registration)
	if err != nil {
		return err
	}
	if acft.AirlineOperated() {
		// Airline flight time is filed by the operating airline itself.
		return &common.ValidationError{Field: "aircraft category", Value: acft.CategoryCode()}
	}

	form := url.Values{}
	form.Set("acao", "I")
	form.Set("ID_AERONAUTA", c.pilotID)
	form.Set("ID_HABILITACAO", acft.RatingDomainID())
	form.Set("CD_HABILITACAO", acft.RatingTypeCode())
	form.Set("txtDataVoo", d.Date)
	form.Set("txtPousos", d.Landings)
	form.Set("cmbFuncao", string(d.Role))
	form.Set("txtObservacao", d.Remarks)
	form.Set("cmbSimulador", "N")
	form.Set("txtMatricula", d.Registration)
	form.Set("hdhabilitacao", acft.CategoryCode())
	form.Set("txtOrigem", d.Departure)
	form.Set("txtDestino", d.Destination)
	form.Set("txtDiurno", d.DayTime)
	form.Set("txtNoturno", d.NightTime)
	form.Set("txtNavegacao", d.CrossCountryTime)
	form.Set("txtInstrumento", d.InstrumentTime)
	form.Set("txtCapota", d.HoodTime)
	form.Set("salvar", "Salvar+rascunho")

	if _, err := c.session.Do(ctx, http.MethodPost, maintainPath, form); err != nil {
		if session.IsSuccessSignal(err) {
			return nil
		}
		return err
	}
	return nil
}

// ChangePassword proxies to the session, which owns the credentials.
func (c *Client) ChangePassword(ctx context.Context, newPassword string) error {
	return c.session.ChangePassword(ctx, newPassword)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
