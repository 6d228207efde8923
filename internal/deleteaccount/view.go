package deleteaccount

import "golang.org/x/text/message"

type Link struct {
	Text        string `json:"text"`
	Destination string `json:"destination"`
}

type Button struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

type Banner struct {
	InstructionMessageId string `json:"instruction_message_id"`
	Instruction          string `json:"instruction"`
	SupportURL           string `json:"support_url"`
}

type ConfirmationModal struct {
	Open         bool      `json:"open"`
	Header       string    `json:"header"`
	Prompt       string    `json:"prompt"`
	Status       Status    `json:"status"`
	ErrorType    ErrorType `json:"error_type"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

type SuccessModal struct {
	Open   bool   `json:"open"`
	Header string `json:"header"`
}

// View is the rendered deletion section. It never carries the password.
type View struct {
	Heading              string            `json:"heading"`
	Subheading           string            `json:"subheading"`
	Paragraphs           []string          `json:"paragraphs"`
	PrintingInstructions string            `json:"printing_instructions"`
	Warning              string            `json:"warning"`
	ChangeInstead        Link              `json:"change_instead"`
	DeleteButton         Button            `json:"delete_button"`
	Banners              []Banner          `json:"banners"`
	ConfirmationModal    ConfirmationModal `json:"confirmation_modal"`
	SuccessModal         SuccessModal      `json:"success_modal"`
}

func Render(props Props, state State, p *message.Printer) View {
	v := View{
		Heading:              p.Sprintf(msgHeader),
		Subheading:           p.Sprintf(msgSubheader),
		Paragraphs:           []string{p.Sprintf(msgText1), p.Sprintf(msgText2)},
		PrintingInstructions: p.Sprintf(msgPrintingInstructions),
		Warning:              p.Sprintf(msgWarning),
		ChangeInstead: Link{
			Text:        p.Sprintf(msgChangeInstead),
			Destination: SupportChangeInsteadURL,
		},
		DeleteButton: Button{
			Label:    p.Sprintf(msgButton),
			Disabled: !props.CanDelete(),
		},
		Banners: []Banner{},
		ConfirmationModal: ConfirmationModal{
			Open:      state.Status == StatusConfirming || state.Status == StatusPending || state.Status == StatusFailed,
			Header:    p.Sprintf(msgModalHeader),
			Prompt:    p.Sprintf(msgModalEnterPassword),
			Status:    state.Status,
			ErrorType: state.ErrorType,
		},
		SuccessModal: SuccessModal{
			Open:   state.Status == StatusDeleted,
			Header: p.Sprintf(msgSuccessHeader),
		},
	}

	if !props.IsVerifiedAccount {
		v.Banners = append(v.Banners, Banner{
			InstructionMessageId: msgPleaseActivate,
			Instruction:          p.Sprintf(msgPleaseActivate),
			SupportURL:           SupportActivateURL,
		})
	}
	if props.HasLinkedTPA {
		v.Banners = append(v.Banners, Banner{
			InstructionMessageId: msgPleaseUnlink,
			Instruction:          p.Sprintf(msgPleaseUnlink),
			SupportURL:           SupportUnlinkURL,
		})
	}

	switch state.ErrorType {
	case ErrorEmptyPassword:
		v.ConfirmationModal.ErrorMessage = p.Sprintf(msgErrorNoPassword)
	case ErrorServer:
		v.ConfirmationModal.ErrorMessage = p.Sprintf(msgErrorUnableToDelete)
	}

	return v
}

// Render draws the flow against the store slice it is connected to.
func (f *Flow) Render(root RootState, p *message.Printer) View {
	return Render(f.Props(), MapStateToProps(root), p)
}
