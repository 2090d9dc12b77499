// Package ussd implements the feature-phone menu tree for the portal.
//
// USSD sessions are stateless on our side: the telecom gateway re-sends the
// caller's entire input path on every keystroke, so each callback re-evaluates
// the path from the menu root. The only state is the Record Store. Screens
// are plain text prefixed CON (session continues) or END (session over); the
// prefix is the whole session-control protocol.
package ussd

import (
	"fmt"
	"strings"

	"github.com/alerta-nampula/alerta/internal/models"
)

// Store is the slice of the record store the interpreter needs. Reads are
// re-executed fresh on every callback; nothing is cached between round-trips.
type Store interface {
	ActiveAlerts(limit int) ([]models.Alert, error)
	ActiveZones() ([]models.SafeZone, error)
	VolunteerByPhone(phone string) (*models.Volunteer, error)
	CreateHelpRequest(req *models.HelpRequest) error
	CreateVolunteer(v *models.Volunteer) error
}

// SiteInfo carries the portal identity and the voice fallback numbers quoted
// on confirmation and error screens.
type SiteInfo struct {
	Name          string
	EmergencyLine string
	MedicalLine   string
}

// Screen is one round-trip's worth of text for the caller's handset.
type Screen struct {
	Text string
	// End terminates the session; otherwise the gateway awaits another digit.
	End bool
}

// Render returns the screen in gateway wire format.
func (s Screen) Render() string {
	if s.End {
		return "END " + s.Text
	}
	return "CON " + s.Text
}

func con(format string, args ...any) Screen {
	return Screen{Text: fmt.Sprintf(format, args...)}
}

func end(format string, args ...any) Screen {
	return Screen{Text: fmt.Sprintf(format, args...), End: true}
}

// SplitPath splits the gateway's cumulative text field into menu tokens.
// An empty text means the session just started.
func SplitPath(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "*")
}

// Interpreter evaluates session paths against the menu tree.
type Interpreter struct {
	store Store
	site  SiteInfo
}

// Opts holds parameters for creating an Interpreter.
type Opts struct {
	Store Store
	Site  SiteInfo
}

// New creates an Interpreter.
func New(opts Opts) (*Interpreter, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("ussd: store is required")
	}
	return &Interpreter{store: opts.Store, site: opts.Site}, nil
}

// Handle evaluates one callback: the full path typed so far and the caller's
// phone number in, one screen out.
func (it *Interpreter) Handle(path []string, phone string) Screen {
	if len(path) == 0 {
		return it.rootMenu()
	}
	switch path[0] {
	case "1":
		return it.alertsMenu(path)
	case "2":
		return it.zonesMenu(path)
	case "3":
		return it.helpMenu(path, phone)
	case "4":
		return it.infoMenu(path)
	case "5":
		return it.volunteerMenu(path, phone)
	case "0":
		return it.medicalMenu(path, phone)
	}
	return invalidOption()
}

func (it *Interpreter) rootMenu() Screen {
	return con("%s\n"+
		"1. Alertas activos\n"+
		"2. Zonas seguras\n"+
		"3. Pedir ajuda\n"+
		"4. Informacao\n"+
		"5. Voluntariado\n"+
		"0. Apoio medico", it.site.Name)
}

func invalidOption() Screen {
	return end("Opcao invalida. Marque novamente para recomecar.")
}
