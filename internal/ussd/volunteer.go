package ussd

import (
	"strings"
	"unicode/utf8"

	"github.com/alerta-nampula/alerta/internal/models"
)

const (
	volunteerNameMax   = 100
	volunteerSkillsMax = 200
)

// volunteerMenu handles branch 5, the multi-stage registration flow.
// Name and skills arrive as separate round-trip tokens; a failed validation
// means starting over from the root, since no per-session state exists.
func (it *Interpreter) volunteerMenu(path []string, phone string) Screen {
	if len(path) == 1 {
		return con("Voluntariado\n" +
			"1. Registar como voluntario\n" +
			"2. Como doar\n" +
			"0. Voltar")
	}

	switch path[1] {
	case "0":
		return it.rootMenu()
	case "2":
		return end("Como doar\n" +
			"Entregas em especie: armazem da Cruz Vermelha, Bairro Central.\n" +
			"Donativos por M-Pesa: conta da protecao civil local.")
	case "1":
		return it.registerVolunteer(path, phone)
	}
	return invalidOption()
}

func (it *Interpreter) registerVolunteer(path []string, phone string) Screen {
	switch {
	case len(path) == 2:
		return con("Escreva o seu nome completo:")
	case len(path) == 3:
		return con("Quais as suas habilidades? (ex: medico, motorista)")
	}

	name := capRunes(strings.TrimSpace(path[2]), volunteerNameMax)
	if utf8.RuneCountInString(name) < 2 {
		return end("Nome invalido. Marque novamente e recomece o registo.")
	}
	skills := capRunes(strings.TrimSpace(path[3]), volunteerSkillsMax)

	existing, err := it.store.VolunteerByPhone(phone)
	if err != nil {
		return end("Nao foi possivel concluir o registo. Tente novamente.")
	}
	if existing != nil {
		return end("Este numero ja esta registado como voluntario. Obrigado!")
	}

	v := &models.Volunteer{Name: name, Phone: phone, Skills: skills}
	if err := it.store.CreateVolunteer(v); err != nil {
		return end("Nao foi possivel concluir o registo. Tente novamente.")
	}
	return end("Obrigado, %s! O seu registo de voluntario foi recebido. Entraremos em contacto.", name)
}

// capRunes caps stored field values at n runes, without an ellipsis.
func capRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
