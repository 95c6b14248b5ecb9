package cmd

import "github.com/charmbracelet/lipgloss"

// 输出样式，对应各种处理结果
var (
	styleHeader  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	stylePreview = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
