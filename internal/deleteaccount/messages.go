package deleteaccount

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	msgHeader               = "account.settings.delete.account.header"
	msgSubheader            = "account.settings.delete.account.subheader"
	msgText1                = "account.settings.delete.account.text.1"
	msgText2                = "account.settings.delete.account.text.2"
	msgPrintingInstructions = "account.settings.delete.account.text.printing.instructions"
	msgWarning              = "account.settings.delete.account.text.warning"
	msgChangeInstead        = "account.settings.delete.account.text.change.instead"
	msgButton               = "account.settings.delete.account.button"
	msgPleaseActivate       = "account.settings.delete.account.please.activate"
	msgPleaseUnlink         = "account.settings.delete.account.please.unlink"
	msgModalHeader          = "account.settings.delete.account.modal.header"
	msgModalEnterPassword   = "account.settings.delete.account.modal.enter.password"
	msgErrorNoPassword      = "account.settings.delete.account.error.no.password"
	msgErrorUnableToDelete  = "account.settings.delete.account.error.unable.to.delete"
	msgSuccessHeader        = "account.settings.delete.account.success.header"
)

var english = map[string]string{
	msgHeader:               "Delete My Account",
	msgSubheader:            "We're sorry to see you go!",
	msgText1:                "Please note: Deletion of your account and personal data is permanent and cannot be undone. We will not be able to recover your account or the data that is deleted.",
	msgText2:                "Once your account is deleted, you cannot use it to take courses on the app, the website, or any other site hosted by us.",
	msgPrintingInstructions: "You may also lose access to verified certificates and other program credentials. If you want a copy of these for your records, print or download them before proceeding with deletion.",
	msgWarning:              "Warning: Account deletion is permanent. Please read the above carefully before proceeding. This is an irreversible action, and you will no longer be able to use the same email address.",
	msgChangeInstead:        "Want to change your email, name, or password instead?",
	msgButton:               "Delete My Account",
	msgPleaseActivate:       "Before proceeding, please activate your account.",
	msgPleaseUnlink:         "Before proceeding, please unlink all social media accounts.",
	msgModalHeader:          "Are you sure?",
	msgModalEnterPassword:   "If you still wish to continue and delete your account, please enter your account password:",
	msgErrorNoPassword:      "A password is required",
	msgErrorUnableToDelete:  "Unable to delete account",
	msgSuccessHeader:        "We're sorry to see you go! Your account will be deleted shortly.",
}

var (
	messageCatalog = newCatalog()
	matcher        = language.NewMatcher([]language.Tag{language.English})
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range english {
		if err := b.SetString(language.English, key, msg); err != nil {
			panic(err)
		}
	}
	return b
}

// NewPrinter picks the best supported language for an Accept-Language header.
func NewPrinter(acceptLanguage string) *message.Printer {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	tag, _, _ := matcher.Match(tags...)
	return message.NewPrinter(tag, message.Catalog(messageCatalog))
}
