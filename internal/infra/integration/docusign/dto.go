package docusign

import (
	"github.com/bepulse/advantage-backend/internal/entity"
)

type EnvelopeDefinition struct {
	TemplateID    string         `json:"templateId,omitempty"`
	EmailSubject  string         `json:"emailSubject,omitempty"`
	TemplateRoles []TemplateRole `json:"templateRoles"`
	Status        string         `json:"status"`
	CustomFields  *CustomFields  `json:"customFields,omitempty"`
}

type TemplateRole struct {
	Email                     string                   `json:"email"`
	Name                      string                   `json:"name"`
	RoleName                  string                   `json:"roleName"`
	ClientUserID              string                   `json:"clientUserId,omitempty"`
	EmbeddedRecipientStartURL string                   `json:"embeddedRecipientStartURL,omitempty"`
	RecipientID               string                   `json:"recipientId"`
	RoutingOrder              string                   `json:"routingOrder"`
	AdditionalNotifications   []AdditionalNotification `json:"additionalNotifications,omitempty"`
	Tabs                      *Tabs                    `json:"tabs,omitempty"`
}

type AdditionalNotification struct {
	SecondaryDeliveryMethod string      `json:"secondaryDeliveryMethod"`
	PhoneNumber             PhoneNumber `json:"phoneNumber"`
}

type PhoneNumber struct {
	CountryCode string `json:"countryCode"`
	Number      string `json:"number"`
}

type Tabs struct {
	TextTabs []TextTab `json:"textTabs"`
}

type TextTab struct {
	TabLabel   string `json:"tabLabel"`
	Value      string `json:"value"`
	Locked     string `json:"locked"`
	DocumentID string `json:"documentId"`
	PageNumber string `json:"pageNumber"`
	XPosition  string `json:"xPosition"`
	YPosition  string `json:"yPosition"`
}

type CustomFields struct {
	TextCustomFields []TextCustomField `json:"textCustomFields"`
}

type TextCustomField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Show  string `json:"show"`
}

type envelopeSummary struct {
	EnvelopeID     string `json:"envelopeId"`
	Status         string `json:"status"`
	StatusDateTime string `json:"statusDateTime"`
	URI            string `json:"uri"`
}

type envelopeResponse struct {
	EnvelopeID            string `json:"envelopeId"`
	Status                string `json:"status"`
	StatusChangedDateTime string `json:"statusChangedDateTime"`
	EmailSubject          string `json:"emailSubject"`
	Recipients            *struct {
		Signers []Signer `json:"signers"`
	} `json:"recipients,omitempty"`
}

type Signer struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	SignedDateTime string `json:"signedDateTime,omitempty"`
}

// EnvelopeStatus é a visão do envelope já com o status mapeado para o domínio.
type EnvelopeStatus struct {
	EnvelopeID     string                `json:"envelopeId"`
	Status         entity.ContractStatus `json:"status"`
	StatusDateTime string                `json:"statusDateTime"`
	EmailSubject   string                `json:"emailSubject"`
	Signers        []Signer              `json:"signers,omitempty"`
}

type recipientViewRequest struct {
	AuthenticationMethod string `json:"authenticationMethod"`
	Email                string `json:"email"`
	UserName             string `json:"userName"`
	ReturnURL            string `json:"returnUrl"`
	ClientUserID         string `json:"clientUserId"`
}

type recipientViewResponse struct {
	URL string `json:"url"`
}

type voidRequest struct {
	Status       string `json:"status"`
	VoidedReason string `json:"voidedReason"`
}

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}
