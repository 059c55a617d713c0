package store

// View is the top-level screen of the app.
type View string

const (
	ViewLoading   View = "loading"
	ViewUniverse  View = "universe"
	ViewPlanet    View = "planet"
	ViewBlackhole View = "blackhole"
)

// AppState is the authoritative top-level view state.
type AppState struct {
	CurrentView View
	IsLoading   bool
	Error       string
}

// NewAppState returns the state of a freshly mounted app.
func NewAppState() AppState {
	return AppState{CurrentView: ViewLoading, IsLoading: true}
}

// AppAction is the closed set of app store transitions.
type AppAction interface {
	Type() string
	appAction()
}

type SetView struct{ View View }
type SetLoading struct{ Loading bool }

// SetError records a user-visible error; an empty Err clears it.
type SetError struct{ Err string }

func (SetView) Type() string    { return "SET_VIEW" }
func (SetLoading) Type() string { return "SET_LOADING" }
func (SetError) Type() string   { return "SET_ERROR" }

func (SetView) appAction()    {}
func (SetLoading) appAction() {}
func (SetError) appAction()   {}

// ReduceApp is the app store reducer.
func ReduceApp(state AppState, action AppAction) AppState {
	switch a := action.(type) {
	case SetView:
		state.CurrentView = a.View
	case SetLoading:
		state.IsLoading = a.Loading
	case SetError:
		state.Error = a.Err
	}
	return state
}

// AppStore is the store of one mounted app's view state.
type AppStore = Store[AppState, AppAction]

// NewAppStore creates an app store with default state.
func NewAppStore() *AppStore {
	return New(NewAppState(), ReduceApp, nil)
}
