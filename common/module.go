package common

type Module string

const (
	ModuleTipbot Module = "tipbot"
)

func (m Module) String() string {
	return string(m)
}
