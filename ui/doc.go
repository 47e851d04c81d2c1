// Package ui is the terminal front-end: Login, Monitoring, Control, and
// Profile screens as bubbletea models. It renders core state and forwards
// user intents; sessions, gating, call classification, and pagination all
// live in the core packages, so screens stay free of business rules.
//
// Navigation is a message carrying a Screen value and flows through a
// single routing point, where the access gate is consulted before the
// protected Control screen opens. Keyboard navigation (tab/shift+tab)
// stands in for the swipe gestures of a touch client.
package ui
