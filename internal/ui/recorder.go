package ui

import (
	"sync"

	"github.com/vladislavdragonenkov/bistro/internal/domain"
	"github.com/vladislavdragonenkov/bistro/internal/view"
)

// Recorder запоминает все обращения контроллера к поверхности; используется в тестах.
type Recorder struct {
	mu            sync.Mutex
	details       domain.CheckoutDetails
	models        []view.Model
	alerts        []string
	notifications []string
	hides         int
	submitToggles []bool
	clears        int
}

// NewRecorder создаёт Recorder с заполненной формой.
func NewRecorder(details domain.CheckoutDetails) *Recorder {
	return &Recorder{details: details}
}

func (r *Recorder) Apply(model view.Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models = append(r.models, model)
}

func (r *Recorder) Alert(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, msg)
}

func (r *Recorder) ShowNotification(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, msg)
}

func (r *Recorder) HideNotification() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hides++
}

func (r *Recorder) CheckoutDetails() domain.CheckoutDetails {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.details
}

func (r *Recorder) ClearCheckout() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details = domain.CheckoutDetails{}
	r.clears++
}

func (r *Recorder) SetSubmitEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitToggles = append(r.submitToggles, enabled)
}

// SetDetails подменяет значения формы.
func (r *Recorder) SetDetails(details domain.CheckoutDetails) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details = details
}

// LastModel возвращает последнюю отрисованную модель.
func (r *Recorder) LastModel() (view.Model, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.models) == 0 {
		return view.Model{}, false
	}
	return r.models[len(r.models)-1], true
}

// Renders возвращает количество отрисовок.
func (r *Recorder) Renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.models)
}

func (r *Recorder) Alerts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.alerts...)
}

func (r *Recorder) Notifications() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notifications...)
}

func (r *Recorder) SubmitToggles() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.submitToggles...)
}

func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

func (r *Recorder) Hides() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hides
}

var _ Surface = (*Recorder)(nil)
