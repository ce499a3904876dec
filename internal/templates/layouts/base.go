package layouts

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

const (
	htmxScriptURL     = "https://unpkg.com/htmx.org@2.0.4"
	tailwindScriptURL = "https://cdn.tailwindcss.com"

	// NavigateEvent is an HX-Trigger event asking the page to load another URL
	// after a delay: {"navigate": {"url": "/dashboard", "delay": 800}}.
	NavigateEvent = "navigate"
)

// The toast container and the event listeners every page relies on.
const baseScript = `
(function () {
  function showToast(detail) {
    var box = document.getElementById('toasts');
    if (!box || !detail) { return; }
    var item = document.createElement('div');
    item.setAttribute('role', 'status');
    item.className = 'toast toast-' + (detail.variant || 'success');
    var title = document.createElement('p');
    title.className = 'font-semibold';
    title.textContent = detail.title || '';
    item.appendChild(title);
    if (detail.description) {
      var body = document.createElement('p');
      body.className = 'text-sm';
      body.textContent = detail.description;
      item.appendChild(body);
    }
    box.appendChild(item);
    setTimeout(function () { item.remove(); }, 4000);
  }
  document.body.addEventListener('showToast', function (evt) { showToast(evt.detail); });
  document.body.addEventListener('navigate', function (evt) {
    var target = evt.detail || {};
    setTimeout(function () { window.location.assign(target.url || '/'); }, target.delay || 0);
  });
  document.body.addEventListener('showLoginTab', function () {
    var signup = document.getElementById('signup-form');
    if (signup) { signup.reset(); }
    selectTab('login');
  });
  function selectTab(name) {
    document.querySelectorAll('[data-tab]').forEach(function (btn) {
      var active = btn.getAttribute('data-tab') === name;
      btn.setAttribute('aria-selected', active ? 'true' : 'false');
      btn.classList.toggle('tab-active', active);
    });
    document.querySelectorAll('[data-panel]').forEach(function (panel) {
      panel.hidden = panel.getAttribute('data-panel') !== name;
    });
  }
  // A "+ New" button only loads its form into an empty slot; a second click
  // closes the open form.
  window.slotIsEmpty = function (id) {
    var slot = document.getElementById(id);
    return !slot || slot.innerHTML.trim() === '';
  };
  document.addEventListener('click', function (evt) {
    var btn = evt.target.closest('[data-tab]');
    if (btn) { selectTab(btn.getAttribute('data-tab')); }
    var closer = evt.target.closest('[data-close-slot]') || evt.target.closest('[data-toggle-slot]');
    if (closer) {
      var slot = document.getElementById(closer.getAttribute('data-close-slot') || closer.getAttribute('data-toggle-slot'));
      if (slot) { slot.innerHTML = ''; }
    }
  });
})();
`

const baseStyle = `
.toast{border-radius:.5rem;padding:.75rem 1rem;box-shadow:0 4px 12px rgba(0,0,0,.15);background:#fff;border-left:4px solid var(--theme-primary);min-width:16rem}
.toast-error{border-left-color:var(--theme-danger)}
.tab-active{background:var(--theme-primary);color:#fff}
.htmx-request .htmx-indicator{display:inline}
.htmx-indicator{display:none}
`

// Base wraps content in the full HTML document.
func Base(title string, content templ.Component, theme *Theme) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if title == "" {
			title = "FutPlan"
		}
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title>`, html.EscapeString(title)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<script src="%s"></script><script src="%s"></script>`, htmxScriptURL, tailwindScriptURL); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<style>%s%s</style></head>`, getThemeCssVars(theme), baseStyle); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<body class="min-h-screen bg-slate-50 text-slate-900">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<div id="toasts" class="fixed bottom-4 right-4 z-50 flex flex-col gap-2" aria-live="polite"></div>`); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<script>%s</script></body></html>`, baseScript)
		return err
	})
}
