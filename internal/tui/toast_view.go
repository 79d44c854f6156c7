package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/feedboard/internal/core/notify"
	"github.com/colonyops/feedboard/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the toast stack in the lower-right corner.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View stacks the toasts, oldest on top.
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t.notification))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(n notify.Notification) string {
	icon, style := styles.IconNotifyInfo, styles.ToastInfoStyle
	switch n.Level {
	case notify.LevelSuccess:
		icon, style = styles.IconNotifySuccess, styles.ToastSuccessStyle
	case notify.LevelWarning:
		icon, style = styles.IconNotifyWarning, styles.ToastWarningStyle
	case notify.LevelError:
		icon, style = styles.IconNotifyError, styles.ToastErrorStyle
	}
	return style.Width(toastWidth).Render(icon + " " + n.Message)
}

// Overlay composites the toast stack over background.
func (v *ToastView) Overlay(background string, width, height int) string {
	content := v.View()
	if content == "" {
		return background
	}

	layer := lipgloss.NewLayer(content)
	layer.X(max(width-lipgloss.Width(content)-1, 0)).
		Y(max(height-lipgloss.Height(content), 0)).
		Z(2)

	return lipgloss.NewCompositor(lipgloss.NewLayer(background), layer).Render()
}
