package ui

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/orbitcore/common"
	"github.com/milk9111/orbitcore/data"
	"github.com/milk9111/orbitcore/detail"
	"github.com/milk9111/orbitcore/store"
)

const (
	VolumeStep    = 0.1
	statusPeriod  = 3 * time.Second
	noticeTimeout = 2 * time.Second
)

// DetailView is the planet player surface over a detail.Model.
type DetailView struct {
	UI *ebitenui.UI

	model *detail.Model
	clip  Clipboard
	lines data.Messages

	nowPlaying *widget.Text
	volume     *widget.Text
	status     *widget.Text
	toggle     *widget.Button
	blackhole  *widget.Button

	notice      string
	noticeUntil time.Duration
}

// NewDetailView builds the surface for m's resolution status. m must have
// been resolved.
func NewDetailView(theme *Theme, m *detail.Model, lines data.Messages, clip Clipboard) *DetailView {
	v := &DetailView{model: m, clip: clip, lines: lines}

	panel := theme.panel(12, widget.DirectionVertical,
		widget.WidgetOpts.MinSize(560, 0),
		anchored(widget.AnchorLayoutPositionCenter, widget.AnchorLayoutPositionCenter),
	)

	switch m.Status() {
	case detail.StatusResolving:
		panel.AddChild(theme.text("Loading planet...", theme.Body, textColor))
	case detail.StatusNotFound:
		panel.AddChild(theme.text("Planet not found", theme.Title, textColor))
		panel.AddChild(theme.text(fmt.Sprintf("No planet called %q exists in this universe.", m.PlanetID()), theme.Body, mutedColor))
		panel.AddChild(theme.button("Back to universe", v.back))
	default:
		v.buildFound(theme, panel)
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	v.UI = &ebitenui.UI{Container: root}
	return v
}

func (v *DetailView) buildFound(theme *Theme, panel *widget.Container) {
	p := v.model.Planet()
	accent := p.Color.WithAlpha(0xff)

	panel.AddChild(theme.text(p.Name, theme.Title, accent))
	panel.AddChild(theme.text(p.Description, theme.Body, textColor))
	panel.AddChild(theme.text(p.Genre, theme.Small, mutedColor))

	v.nowPlaying = theme.text("", theme.Body, textColor)
	panel.AddChild(v.nowPlaying)

	controls := row(10)
	v.toggle = theme.button("Play", v.model.TogglePlayback)
	controls.AddChild(v.toggle)
	controls.AddChild(theme.button("-", func() { v.stepVolume(-VolumeStep) }))
	v.volume = theme.text("", theme.Body, textColor)
	controls.AddChild(v.volume)
	controls.AddChild(theme.button("+", func() { v.stepVolume(VolumeStep) }))
	panel.AddChild(controls)

	for i, t := range v.model.Tracks() {
		label := TrackLabel(t)
		panel.AddChild(theme.button(label, func() {
			if err := v.model.PlayTrack(i); err != nil {
				log.Printf("ui: play track %d: %v", i, err)
			}
		}))
	}

	actions := row(10)
	v.blackhole = theme.button("Enter blackhole", func() { v.model.ToggleBlackhole() })
	actions.AddChild(v.blackhole)
	actions.AddChild(theme.button("Copy link", v.copyLink))
	actions.AddChild(theme.button("Back", v.back))
	panel.AddChild(actions)

	v.status = theme.text("", theme.Small, mutedColor)
	panel.AddChild(v.status)
}

func (v *DetailView) back() {
	if err := v.model.Back(); err != nil {
		log.Printf("ui: back: %v", err)
	}
}

func (v *DetailView) stepVolume(delta float64) {
	v.model.SetVolume(StepVolume(v.model.Audio().Volume, delta))
}

func (v *DetailView) copyLink() {
	link := v.model.ShareLink()
	if v.clip == nil {
		v.notice = "Link: " + link
		return
	}
	if err := v.clip.WriteText(link); err != nil {
		log.Printf("ui: copy link: %v", err)
		v.notice = "Link: " + link
		return
	}
	v.notice = "Copied " + link
}

// Refresh syncs the labels with the audio state. elapsed drives the
// cycling status line.
func (v *DetailView) Refresh(s store.AudioState, elapsed time.Duration) {
	if v.nowPlaying == nil {
		return
	}
	v.nowPlaying.Label = NowPlaying(s)
	v.volume.Label = VolumeLabel(s.Volume)
	if s.IsPlaying {
		setLabel(v.toggle, "Pause")
	} else {
		setLabel(v.toggle, "Play")
	}

	lines := v.lines.PlanetEntry
	if s.PlaybackMode == store.PlaybackBlackhole {
		setLabel(v.blackhole, "Leave blackhole")
		lines = v.lines.Blackhole
	} else {
		setLabel(v.blackhole, "Enter blackhole")
	}

	if v.notice != "" {
		v.noticeUntil = elapsed + noticeTimeout
		v.status.Label = v.notice
		v.notice = ""
		return
	}
	if elapsed < v.noticeUntil {
		return
	}
	v.status.Label = data.Cycle(lines, elapsed, statusPeriod)
}

func (v *DetailView) Update() {
	v.UI.Update()
}

func (v *DetailView) Draw(screen *ebiten.Image) {
	v.UI.Draw(screen)
}

// NowPlaying describes the current track.
func NowPlaying(s store.AudioState) string {
	if s.CurrentTrack == nil {
		return "Nothing playing"
	}
	state := "Paused"
	if s.IsPlaying {
		state = "Now playing"
	}
	return fmt.Sprintf("%s: %s - %s", state, s.CurrentTrack.Title, s.CurrentTrack.Artist)
}

// TrackLabel is the track list entry of t.
func TrackLabel(t data.Track) string {
	return fmt.Sprintf("%d. %s - %s  %s", t.ID, t.Title, t.Artist, detail.FormatDuration(t.Duration))
}

// VolumeLabel renders a volume as a percentage.
func VolumeLabel(v float64) string {
	return fmt.Sprintf("Volume %d%%", int(math.Round(v*100)))
}

// StepVolume moves v by delta on a 0.1 grid, kept within [0,1].
func StepVolume(v, delta float64) float64 {
	return common.Clamp01(math.Round((v+delta)*10) / 10)
}
