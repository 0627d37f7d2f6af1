package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/GLSDEV26/CHOWGANN/internal/adapters/payments/epcqr"
	"github.com/GLSDEV26/CHOWGANN/internal/adapters/receipt"
	"github.com/GLSDEV26/CHOWGANN/internal/domain"
	"github.com/GLSDEV26/CHOWGANN/internal/usecase"
)

type Server struct {
	mux       *http.ServeMux
	products  *usecase.ProductUC
	customers *usecase.CustomerUC
	orders    *usecase.OrderUC
	settings  *usecase.SettingsUC
	backup    *usecase.BackupUC
	stats     *usecase.StatsUC
}

func New(p *usecase.ProductUC, c *usecase.CustomerUC, o *usecase.OrderUC, st *usecase.SettingsUC, b *usecase.BackupUC, stats *usecase.StatsUC) http.Handler {
	s := &Server{
		mux:       http.NewServeMux(),
		products:  p,
		customers: c,
		orders:    o,
		settings:  st,
		backup:    b,
		stats:     stats,
	}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductByID)

	s.mux.HandleFunc("/api/customers", s.apiCustomers)
	s.mux.HandleFunc("/api/customers/", s.apiCustomerByID)

	s.mux.HandleFunc("/api/orders", s.apiOrders)
	s.mux.HandleFunc("/api/orders/", s.apiOrderByID)

	s.mux.HandleFunc("/api/settings", s.apiSettings)

	s.mux.HandleFunc("/api/stats", s.apiStats)
	s.mux.HandleFunc("/api/stats/daily", s.apiStatsDaily)
	s.mux.HandleFunc("/api/stats/monthly", s.apiStatsMonthly)

	s.mux.HandleFunc("/api/backup/export", s.apiBackupExport)
	s.mux.HandleFunc("/api/backup/inspect", s.apiBackupInspect)
	s.mux.HandleFunc("/api/backup/import", s.apiBackupImport)

	s.mux.HandleFunc("/admin/export/orders.xlsx", s.handleExportOrdersXLSX)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidBackup):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verrs.Error()})
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// pathID splits "/api/orders/42/status" after the prefix into (42, "status").
func pathID(prefix, path string) (uint, string, bool) {
	rest := strings.TrimPrefix(path, prefix)
	idStr, tail, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, "", false
	}
	return uint(id), tail, true
}

// ── Products ────────────────────────────────────────────────────────────

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var (
			list []domain.Product
			err  error
		)
		if r.URL.Query().Get("active") != "" {
			list, err = s.products.ListActive(r.Context())
		} else {
			list, err = s.products.List(r.Context())
		}
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var p domain.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}
		if err := s.products.Save(r.Context(), &p); err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiProductByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := pathID("/api/products/", r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		p, err := s.products.Get(r.Context(), id)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut:
		var p domain.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}
		p.ID = id
		if err := s.products.Save(r.Context(), &p); err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if err := s.products.Delete(r.Context(), id); err != nil {
			s.fail(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ── Customers ───────────────────────────────────────────────────────────

func (s *Server) apiCustomers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.customers.List(r.Context())
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var c domain.Customer
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}
		if err := s.customers.Save(r.Context(), &c); err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiCustomerByID(w http.ResponseWriter, r *http.Request) {
	id, tail, ok := pathID("/api/customers/", r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if tail == "orders" && r.Method == http.MethodGet {
		list, err := s.orders.ListByCustomer(r.Context(), id)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}
	switch r.Method {
	case http.MethodGet:
		c, err := s.customers.Get(r.Context(), id)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	case http.MethodPut:
		var c domain.Customer
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}
		c.ID = id
		if err := s.customers.Save(r.Context(), &c); err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	case http.MethodDelete:
		if err := s.customers.Delete(r.Context(), id); err != nil {
			s.fail(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ── Orders ──────────────────────────────────────────────────────────────

func (s *Server) apiOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.orders.List(r.Context())
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var in usecase.CreateOrderInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}
		order, err := s.orders.Create(r.Context(), in)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, order)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiOrderByID(w http.ResponseWriter, r *http.Request) {
	id, tail, ok := pathID("/api/orders/", r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch tail {
	case "status":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body struct {
			Status domain.OrderStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}
		order, err := s.orders.ChangeStatus(r.Context(), id, body.Status)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
		return
	case "cancel":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		order, err := s.orders.Cancel(r.Context(), id)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
		return
	case "supplier/advance", "supplier/reset":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var (
			order *domain.Order
			err   error
		)
		if tail == "supplier/advance" {
			order, err = s.orders.AdvanceSupplier(r.Context(), id)
		} else {
			order, err = s.orders.ResetSupplier(r.Context(), id)
		}
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
		return
	case "receipt":
		s.apiOrderReceipt(w, r, id)
		return
	case "epc":
		s.apiOrderEPC(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		order, err := s.orders.Get(r.Context(), id)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
	case http.MethodPut:
		// merge the body over the stored order; totals are recomputed on save
		order, err := s.orders.Get(r.Context(), id)
		if err != nil {
			s.fail(w, err)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(order); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}
		order.ID = id
		if err := s.orders.Save(r.Context(), order); err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
	case http.MethodDelete:
		if err := s.orders.Delete(r.Context(), id); err != nil {
			s.fail(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiOrderReceipt(w http.ResponseWriter, r *http.Request, id uint) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	order, err := s.orders.Get(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt.Build(order, settings))
}

func (s *Server) apiOrderEPC(w http.ResponseWriter, r *http.Request, id uint) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	order, err := s.orders.Get(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if settings.IBAN == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "no IBAN configured"})
		return
	}
	payload := epcqr.Payload(settings.IBAN, settings.BIC, settings.Beneficiary(), order.TotalAmount)
	writeJSON(w, http.StatusOK, map[string]string{"payload": payload})
}

// ── Settings ────────────────────────────────────────────────────────────

func (s *Server) apiSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := s.settings.Get(r.Context())
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	case http.MethodPut:
		current, err := s.settings.Get(r.Context())
		if err != nil {
			s.fail(w, err)
			return
		}
		var in domain.Settings
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}
		in.ID = current.ID
		in.LastBackupAt = current.LastBackupAt
		if err := s.settings.Save(r.Context(), &in); err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, in)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ── Stats ───────────────────────────────────────────────────────────────

func (s *Server) apiStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stats, err := s.stats.Dashboard(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) apiStatsDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	now := time.Now()
	year, month := now.Year(), now.Month()
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
		year = y
	}
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && m >= 1 && m <= 12 {
		month = time.Month(m)
	}
	buckets, err := s.stats.Daily(r.Context(), year, month)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"year": year, "month": int(month), "revenue": buckets})
}

func (s *Server) apiStatsMonthly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	year := time.Now().Year()
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
		year = y
	}
	buckets, err := s.stats.Monthly(r.Context(), year)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"year": year, "revenue": buckets})
}

// ── Backup ──────────────────────────────────────────────────────────────

func (s *Server) apiBackupExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	payload, err := s.backup.Export(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", s.backup.Filename(time.Now())))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

func (s *Server) apiBackupInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	payload, err := s.readBackupBody(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"exportedAt": payload.ExportedAt,
		"version":    payload.Version,
		"summary":    s.backup.Summary(payload),
	})
}

func (s *Server) apiBackupImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	payload, err := s.readBackupBody(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.backup.Import(r.Context(), payload); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": s.backup.Summary(payload)})
}

// readBackupBody accepts either a raw JSON body or a multipart upload with a
// "file" part (.backup or .json, both are the same document).
func (s *Server) readBackupBody(r *http.Request) (*domain.BackupPayload, error) {
	var data []byte
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, domain.ErrInvalidBackup
		}
		defer file.Close()
		data, err = io.ReadAll(file)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		data, err = io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
	}
	return s.backup.Parse(data)
}

// ── Spreadsheet export ──────────────────────────────────────────────────

func (s *Server) handleExportOrdersXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	orders, err := s.orders.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Commandes"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Numéro", "Date", "Client", "Statut", "Paiement", "Fournisseur", "Sous-total", "Remise", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, o := range orders {
		values := []any{
			o.OrderNumber,
			o.CreatedAt.Format("02/01/2006"),
			o.CustomerName,
			domain.StatusLabels[o.Status],
			domain.PaymentLabels[o.PaymentMethod],
			string(o.SupplierStatus.Normalize()),
			o.Subtotal.InexactFloat64(),
			o.TotalDiscount.InexactFloat64(),
			o.TotalAmount.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="commandes.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("xlsx export failed")
	}
}
