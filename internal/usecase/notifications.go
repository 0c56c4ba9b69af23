package usecase

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

var (
	welcomeTemplate = template.Must(template.New("welcome").Parse(
		`<p>Hola {{.Name}},</p><p>Tu cuenta <strong>{{.Username}}</strong> está lista. Ya puedes registrar pedidos.</p>`))
	paymentTemplate = template.Must(template.New("payment").Parse(
		`<p>Recibimos el pago de tu pedido <strong>#{{.Sheet}}</strong>. Gracias por tu preferencia.</p>`))
)

func welcomeMail(to, name, username string) (model.Notification, error) {
	body, err := render(welcomeTemplate, map[string]string{"Name": name, "Username": username})
	if err != nil {
		return model.Notification{}, err
	}
	return model.Notification{To: to, Subject: "Bienvenido", HTML: body}, nil
}

func paymentReceivedMail(to string, sheet int64) (model.Notification, error) {
	body, err := render(paymentTemplate, map[string]int64{"Sheet": sheet})
	if err != nil {
		return model.Notification{}, err
	}
	return model.Notification{To: to, Subject: fmt.Sprintf("Pago recibido, pedido #%d", sheet), HTML: body}, nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
