package domain

const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
)

// Principal kinds carried in the JWT.
const (
	KindAdmin = "admin"
	KindUser  = "user"
)

const (
	SectorTypeEnergy = "ENERGY"
	SectorTypeInfra  = "INFRA"
)

// Supported content locales. DefaultLocale is the fallback when a
// requested locale is missing from a localized document.
const (
	LocaleEN      = "en"
	LocaleRU      = "ru"
	LocaleTK      = "tk"
	DefaultLocale = LocaleEN
)

var SupportedLocales = []string{LocaleEN, LocaleRU, LocaleTK}

func IsSupportedLocale(l string) bool {
	for _, s := range SupportedLocales {
		if s == l {
			return true
		}
	}
	return false
}

const (
	EventSectionCreated = "section.created"
	EventSectionUpdated = "section.updated"
	EventSectionDeleted = "section.deleted"
)

const (
	AdminCookieName = "AdminAuthorization"
	UserCookieName  = "Authorization"
)
