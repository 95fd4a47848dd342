package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/baguioroutes/roadadvisor/pkg/geo"
	"github.com/baguioroutes/roadadvisor/pkg/present"
	"go.uber.org/zap"
)

// advisoryStreamRequest is one inbound websocket frame: either a position
// fix or a location-permission report.
type advisoryStreamRequest struct {
	Type    string      `json:"type" validate:"required,oneof=fix permission"`
	Fix     *fixRequest `json:"fix,omitempty"`
	Granted *bool       `json:"granted,omitempty"`
}

type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*advisoryStreamRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &advisoryStreamRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// HandleAdvisoryStream consumes one frame from the device. A fix runs to
// completion through matcher and advisor before the next frame is read:
// the location provider is the single producer and fixes are handled
// serially.
func (u *User) HandleAdvisoryStream() error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	validate := validator.New()

	if err := validate.Struct(req); err != nil {
		return u.writeValidationError(validate, err)
	}

	switch req.Type {
	case "permission":
		granted := req.Granted != nil && *req.Granted
		if err := u.hub.advisoryService.ReportPermission(granted); err != nil {
			return u.write(envelope{"error": map[string]string{
				"code":    http.StatusText(http.StatusForbidden),
				"message": err.Error(),
			}})
		}
		return u.write(envelope{"data": "ok"})

	case "fix":
		if req.Fix == nil {
			return u.write(envelope{"error": map[string]string{
				"code":    http.StatusText(http.StatusBadRequest),
				"message": "fix payload is required",
			}})
		}
		if err := validate.Struct(req.Fix); err != nil {
			return u.writeValidationError(validate, err)
		}

		advisory := u.hub.advisoryService.HandleFix(req.Fix.Latitude, req.Fix.Longitude, req.Fix.SpeedMps)
		return u.write(envelope{"data": NewAdvisoryResponse(advisory)})
	}

	return nil
}

func (u *User) writeValidationError(validate *validator.Validate, err error) error {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	vv := translateError(err, trans)
	vvString := []string{}
	for _, v := range vv {
		vvString = append(vvString, v.Error())
	}
	return u.write(envelope{"error": map[string]string{
		"code":    http.StatusText(http.StatusBadRequest),
		"message": fmt.Sprintf("validation error: %v", vvString),
	}})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

// Hub tracks connected devices. It is also the production implementation
// of the presentation surfaces: map-drawing, camera and speech calls are
// broadcast as JSON events and rendered/spoken by the client.
type Hub struct {
	mu              sync.RWMutex
	seq             uint
	us              []*User
	ns              map[uint]*User
	advisoryService AdvisoryService

	log *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	hub := &Hub{
		ns:  make(map[uint]*User),
		us:  make([]*User, 0),
		log: log,
	}

	return hub
}

// Bind attaches the advisory service; the hub is constructed before the
// service because the advisor speaks through the hub's surfaces.
func (h *Hub) Bind(advisoryService AdvisoryService) {
	h.advisoryService = advisoryService
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, oki := h.ns[user.id]; !oki {
		return
	}
	delete(h.ns, user.id)

	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		h.Remove(user)
	}
}

func (h *Hub) broadcast(x interface{}) {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		if err := user.write(x); err != nil {
			h.log.Warn("dropping broadcast to user", zap.Uint("user", user.id), zap.Error(err))
		}
	}
}

// present.SpeechSurface

func (h *Hub) Speak(text string, rate float64) {
	h.broadcast(envelope{"event": "speak", "text": text, "rate": rate})
}

func (h *Hub) Stop() {
	h.broadcast(envelope{"event": "speech_stop"})
}

// present.MapSurface

func (h *Hub) SetPolylines(polylines []present.Polyline) {
	h.broadcast(envelope{"event": "polylines", "polylines": polylines})
}

func (h *Hub) AnimateToRegion(region geo.BoundingRegion) {
	h.broadcast(envelope{"event": "camera", "region": region})
}

func (h *Hub) SetStatusText(text string) {
	h.broadcast(envelope{"event": "status", "text": text})
}
