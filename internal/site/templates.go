package site

// pageTemplate is the full HTML shell. The #view element holds the sidebar
// and the content area and is replaced wholesale on live navigation.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.Assets}}style.css">
</head>
<body data-live="{{.Live}}" data-base="{{.Base}}">
<header class="navbar">
  <button class="menu-toggle" id="menu-toggle" aria-label="Toggle sidebar">&#9776;</button>
  <a class="brand" href="{{.HomeHref}}" data-nav>{{.SiteTitle}}</a>
  <nav class="concept-links" id="concept-links">
    {{- range .Concepts}}
    <a href="{{.Href}}" data-nav data-concept="{{.ID}}"{{if .Active}} class="active"{{end}}>{{.Name}}</a>
    {{- end}}
  </nav>
  <div class="concept-switch" id="concept-switch">
    <button class="concept-switch-trigger" id="concept-switch-trigger" aria-haspopup="true" aria-expanded="false">Topics &#9662;</button>
    <ul class="concept-dropdown" id="concept-dropdown">
      {{- range .Concepts}}
      <li><a href="{{.Href}}" data-nav data-concept="{{.ID}}"{{if .Active}} class="active"{{end}}>{{.Name}}</a></li>
      {{- end}}
    </ul>
  </div>
  <div class="search">
    <input type="search" id="search-input" placeholder="Search concepts..." autocomplete="off">
    <ul class="search-results" id="search-results"></ul>
  </div>
  <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">&#9680;</button>
</header>
<div class="sidebar-overlay" id="sidebar-overlay"></div>
<div class="layout" id="view">
{{.View}}
</div>
<script src="{{.Assets}}script.js"></script>
</body>
</html>
`

// viewTemplates render the #view fragment and the demo widgets.
const viewTemplates = `
{{define "view"}}<aside class="sidebar" id="sidebar">{{.Sidebar}}</aside>
<main class="content" id="content" data-kind="{{.Nav.Kind}}" data-path="{{.Nav.Path}}"{{with .Nav.ConceptID}} data-concept="{{.}}"{{end}}{{with .Nav.UnitID}} data-unit="{{.}}"{{end}}>
{{.Body}}
</main>{{end}}

{{define "welcome"}}<section class="welcome">
  <h1>{{.Title}}</h1>
  <div class="prose">{{.Body}}</div>
  <div class="concept-cards">
    {{- range .Concepts}}
    <a class="concept-card" href="{{.Href}}" data-nav>
      <h2>{{.Name}}</h2>
      {{with .Summary}}<p>{{.}}</p>{{end}}
      <span class="unit-count">{{.UnitCount}} {{if eq .UnitCount 1}}topic{{else}}topics{{end}}</span>
    </a>
    {{- end}}
  </div>
</section>{{end}}

{{define "overview"}}<article class="overview">
  <p class="breadcrumb">{{.ConceptName}}</p>
  <h1>{{.Title}}</h1>
  <div class="prose">{{.Body}}</div>
  {{with .Units}}<ul class="unit-list">
    {{- range .}}
    <li><a href="{{.Href}}" data-nav>{{.Title}}</a>{{with .Group}} <span class="group-label">{{.}}</span>{{end}}</li>
    {{- end}}
  </ul>{{end}}
</article>{{end}}

{{define "unit"}}<article class="unit">
  <p class="breadcrumb"><a href="{{.ConceptHref}}" data-nav>{{.ConceptName}}</a>{{with .Group}} &rsaquo; {{.}}{{end}}</p>
  <h1>{{.Title}}</h1>
  {{with .Summary}}<p class="summary">{{.}}</p>{{end}}
  {{- range .Sections}}
  <section class="unit-section">
    {{with .Heading}}<h2>{{.}}</h2>{{end}}
    {{with .Text}}<div class="prose">{{.}}</div>{{end}}
    {{if .Code}}<figure class="code-sample">{{with .Caption}}<figcaption>{{.}}</figcaption>{{end}}{{.Code}}</figure>{{end}}
  </section>
  {{- end}}
  {{if .Demo}}<section class="demo" id="demo">{{.Demo}}</section>{{end}}
</article>{{end}}

{{define "notfound"}}<section class="not-found">
  <h1>Page not found</h1>
  <p>Nothing lives at <code>{{.Path}}</code>.</p>
  <p><a href="{{.HomeHref}}" data-nav>Back to the welcome page</a></p>
</section>{{end}}

{{define "demo"}}{{if not .Live}}<p class="demo-note">Interactive demos run on the live server (<code>oopconcepts serve</code>).</p>{{end}}
{{- range .Steppers}}
<div class="widget stepper" data-widget="stepper" data-field="{{.Name}}">
  {{with .Label}}<h3>{{.}}</h3>{{end}}
  <ol class="steps">
    {{- range .Steps}}
    <li class="{{if .Current}}current{{else if .Done}}done{{end}}">{{.Title}}</li>
    {{- end}}
  </ol>
  <div class="step-detail"><h4>{{.CurrentTitle}}</h4>{{.Detail}}</div>
  <div class="controls">
    <button data-action="previous" data-field="{{.Name}}"{{if or $.Disabled .AtFirst}} disabled{{end}}>Previous</button>
    <span class="position">{{.Position}} / {{.Count}}</span>
    <button data-action="next" data-field="{{.Name}}"{{if or $.Disabled .AtLast}} disabled{{end}}>Next</button>
    <button data-action="reset" data-field="{{.Name}}"{{if $.Disabled}} disabled{{end}}>Reset</button>
    {{- range .Autoplays}}
    {{if .Playing}}<button data-action="pause" data-field="{{.Name}}"{{if $.Disabled}} disabled{{end}}>Pause</button>
    {{else}}<button data-action="play" data-field="{{.Name}}"{{if $.Disabled}} disabled{{end}}>Play</button>{{end}}
    {{- end}}
  </div>
</div>
{{- end}}
{{- range .Toggles}}
<div class="widget toggle{{if .On}} on{{end}}" data-widget="toggle" data-field="{{.Name}}">
  {{if .Derived}}<span class="toggle-label">{{.Label}}</span>
  {{else}}<button data-action="toggle" data-field="{{.Name}}"{{if or $.Disabled .Locked}} disabled{{end}}>{{.Label}}{{if .Latch}}{{if .On}} &#10003;{{end}}{{else}}: {{if .On}}on{{else}}off{{end}}{{end}}</button>{{end}}
  {{if and .On .Content}}<div class="toggle-content">{{.Content}}</div>{{end}}
</div>
{{- end}}
{{- range $sel := .Selectors}}
<div class="widget selector" data-widget="selector" data-field="{{.Name}}">
  {{with .Label}}<h3>{{.}}</h3>{{end}}
  <div class="tabs">
    {{- range .Options}}
    <button data-action="select" data-field="{{$sel.Name}}" data-value="{{.ID}}"{{if .Active}} class="active"{{end}}{{if $.Disabled}} disabled{{end}}>{{.Label}}</button>
    {{- end}}
    {{if and .Clearable .Selected}}<button class="clear" data-action="clear" data-field="{{.Name}}"{{if $.Disabled}} disabled{{end}}>Clear</button>{{end}}
  </div>
  {{with .Selected}}<div class="option-detail">{{.Detail}}{{.Code}}</div>{{end}}
</div>
{{- end}}
{{- range .Runs}}
<div class="widget run" data-widget="run" data-field="{{.Name}}">
  <button data-action="start" data-field="{{.Name}}"{{if or $.Disabled .Running}} disabled{{end}}>{{if .Running}}Running...{{else}}{{.Label}}{{end}}</button>
  <pre class="run-output">{{if .Running}}<span class="spinner"></span>{{else}}{{.Output}}{{end}}</pre>
</div>
{{- end}}
{{- range .Reveals}}
<div class="widget reveal" data-widget="reveal" data-field="{{.Name}}">
  {{with .Label}}<h3>{{.}}</h3>{{end}}
  <ul class="revealed">
    {{- range .Items}}
    <li>{{.}}</li>
    {{- end}}
    {{if .Pending}}<li class="pending">&hellip;</li>{{end}}
  </ul>
</div>
{{- end}}
{{- range $set := .Sets}}
<div class="widget set" data-widget="set" data-field="{{.Name}}">
  {{with .Label}}<h3>{{.}} ({{$set.Count}})</h3>{{end}}
  <div class="members">
    {{- range .Members}}
    <button data-action="toggle_member" data-field="{{$set.Name}}" data-value="{{.ID}}"{{if .Active}} class="active"{{end}}{{if $.Disabled}} disabled{{end}}>{{.Label}}</button>
    {{- end}}
  </div>
</div>
{{- end}}
{{- with .Car}}
<div class="widget car" data-widget="car" data-field="car">
  <div class="dashboard">
    <div class="gauge"><span class="value">{{.Speed}}</span> km/h</div>
    <div class="meter battery"><span style="width: {{.BatteryPct}}%"></span></div>
    <div class="readings">Battery {{printf "%.0f" .Battery}}% &middot; Efficiency {{printf "%.0f" .Efficiency}}%</div>
    <p class="car-message">{{.Message}}</p>
  </div>
  <div class="controls">
    <button data-action="start_engine" data-field="car"{{if $.Disabled}} disabled{{end}}>{{if .Started}}Stop{{else}}Start{{end}}</button>
    <button data-action="accelerate" data-field="car"{{if $.Disabled}} disabled{{end}}>Accelerate</button>
    <button data-action="brake" data-field="car"{{if $.Disabled}} disabled{{end}}>Brake</button>
    <button data-action="recharge" data-field="car"{{if $.Disabled}} disabled{{end}}>Recharge</button>
  </div>
</div>
{{- end}}
{{- with .Calc}}
<div class="widget calculator" data-widget="calculator" data-field="calculator">
  <div class="operands">
    <input type="number" step="any" data-action="set_a" data-field="calculator" value="{{.A}}"{{if $.Disabled}} disabled{{end}}>
    <input type="number" step="any" data-action="set_b" data-field="calculator" value="{{.B}}"{{if $.Disabled}} disabled{{end}}>
    <select data-action="set_op" data-field="calculator"{{if $.Disabled}} disabled{{end}}>
      {{- range .Ops}}
      <option value="{{.Value}}"{{if .Active}} selected{{end}}>{{.Label}}</option>
      {{- end}}
    </select>
    <button data-action="calculate" data-field="calculator"{{if $.Disabled}} disabled{{end}}>Calculate</button>
  </div>
  {{if .HasResult}}<p class="calc-result"><code>{{.Call}}</code> = {{.Result}}</p>{{end}}
</div>
{{- end}}{{end}}
`

// cssContent is the stylesheet shared by the live server and the export.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-secondary: #f6f8fa;
  --bg-tertiary: #eaeef2;
  --text: #1f2328;
  --text-secondary: #59636e;
  --border: #d1d9e0;
  --accent: #0969da;
  --accent-soft: #ddf4ff;
  --success: #1a7f37;
  --warning: #9a6700;
  --navbar-height: 56px;
  --sidebar-width: 260px;
  --radius: 6px;
  --font: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  --mono: ui-monospace, SFMono-Regular, "SF Mono", Menlo, Consolas, monospace;
}

[data-theme="dark"] {
  --bg: #0d1117;
  --bg-secondary: #161b22;
  --bg-tertiary: #21262d;
  --text: #e6edf3;
  --text-secondary: #9198a1;
  --border: #30363d;
  --accent: #4493f8;
  --accent-soft: #0c2d6b;
  --success: #3fb950;
  --warning: #d29922;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: var(--font);
  color: var(--text);
  background: var(--bg);
  line-height: 1.6;
}

a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }

/* ===== Navbar ===== */
.navbar {
  position: fixed;
  top: 0; left: 0; right: 0;
  height: var(--navbar-height);
  display: flex;
  align-items: center;
  gap: 16px;
  padding: 0 16px;
  background: var(--bg-secondary);
  border-bottom: 1px solid var(--border);
  z-index: 30;
}

.brand { font-weight: 600; font-size: 18px; color: var(--text); white-space: nowrap; }

.concept-links { display: flex; gap: 4px; overflow-x: auto; }
.concept-links a {
  padding: 6px 10px;
  border-radius: var(--radius);
  color: var(--text-secondary);
  white-space: nowrap;
}
.concept-links a.active, .concept-links a:hover {
  color: var(--text);
  background: var(--bg-tertiary);
  text-decoration: none;
}

.concept-switch { position: relative; display: none; }
.concept-switch-trigger, .theme-toggle, .menu-toggle {
  background: none;
  border: 1px solid var(--border);
  border-radius: var(--radius);
  color: var(--text);
  padding: 4px 10px;
  cursor: pointer;
  font: inherit;
}
.concept-dropdown {
  display: none;
  position: absolute;
  top: 100%;
  left: 0;
  min-width: 200px;
  margin: 4px 0 0;
  padding: 4px 0;
  list-style: none;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: var(--radius);
  box-shadow: 0 8px 24px rgba(0, 0, 0, 0.12);
}
.concept-switch.open .concept-dropdown { display: block; }
.concept-dropdown a { display: block; padding: 6px 12px; color: var(--text); }
.concept-dropdown a.active { font-weight: 600; }

.search { position: relative; margin-left: auto; }
.search input {
  width: 220px;
  padding: 6px 10px;
  border: 1px solid var(--border);
  border-radius: var(--radius);
  background: var(--bg);
  color: var(--text);
  font: inherit;
}
.search-results {
  display: none;
  position: absolute;
  right: 0;
  width: 340px;
  max-height: 60vh;
  overflow-y: auto;
  margin: 4px 0 0;
  padding: 0;
  list-style: none;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: var(--radius);
}
.search-results.visible { display: block; }
.search-results li a { display: block; padding: 8px 12px; color: var(--text); }
.search-results li a:hover { background: var(--bg-secondary); text-decoration: none; }
.search-results .result-concept { display: block; font-size: 12px; color: var(--text-secondary); }
.search-results .empty { padding: 8px 12px; color: var(--text-secondary); }

.menu-toggle { display: none; }

/* ===== Layout ===== */
.layout {
  display: flex;
  padding-top: var(--navbar-height);
  min-height: 100vh;
}

.sidebar {
  position: fixed;
  top: var(--navbar-height);
  bottom: 0;
  width: var(--sidebar-width);
  overflow-y: auto;
  padding: 16px 8px;
  background: var(--bg-secondary);
  border-right: 1px solid var(--border);
}
.sidebar ul { list-style: none; margin: 0; padding: 0; }
.sidebar ul ul { padding-left: 12px; }
.sidebar li a {
  display: block;
  padding: 4px 10px;
  border-radius: var(--radius);
  color: var(--text-secondary);
}
.sidebar li a.active {
  color: var(--text);
  background: var(--accent-soft);
  font-weight: 600;
}
.sidebar .sidebar-heading {
  padding: 4px 10px 8px;
  font-size: 12px;
  font-weight: 600;
  letter-spacing: 0.04em;
  text-transform: uppercase;
  color: var(--text-secondary);
}
.sidebar .group > .group-toggle {
  display: block;
  padding: 4px 10px;
  cursor: pointer;
  font-weight: 600;
}
.sidebar .group > .group-toggle::before { content: "\25B8 "; }
.sidebar .group.expanded > .group-toggle::before { content: "\25BE "; }
.sidebar .group > ul { display: none; }
.sidebar .group.expanded > ul { display: block; }

.sidebar-overlay { display: none; }

.content {
  flex: 1;
  margin-left: var(--sidebar-width);
  padding: 32px 48px;
  max-width: calc(960px + var(--sidebar-width));
}

.breadcrumb { margin: 0; color: var(--text-secondary); font-size: 14px; }
.summary { font-size: 18px; color: var(--text-secondary); }

.prose code, .option-detail code, .calc-result code {
  font-family: var(--mono);
  font-size: 0.9em;
  padding: 2px 4px;
  background: var(--bg-tertiary);
  border-radius: 4px;
}
pre {
  font-family: var(--mono);
  font-size: 14px;
  padding: 16px;
  overflow-x: auto;
  border: 1px solid var(--border);
  border-radius: var(--radius);
}
figure.code-sample { margin: 16px 0; }
figure.code-sample figcaption { font-size: 13px; color: var(--text-secondary); margin-bottom: 4px; }

/* ===== Welcome ===== */
.concept-cards {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(220px, 1fr));
  gap: 16px;
  margin-top: 24px;
}
.concept-card {
  display: block;
  padding: 16px;
  border: 1px solid var(--border);
  border-radius: var(--radius);
  color: var(--text);
  background: var(--bg-secondary);
}
.concept-card:hover { border-color: var(--accent); text-decoration: none; }
.concept-card h2 { margin: 0 0 8px; font-size: 18px; }
.concept-card .unit-count { font-size: 13px; color: var(--text-secondary); }

.unit-list .group-label { font-size: 12px; color: var(--text-secondary); }

/* ===== Demo widgets ===== */
.demo {
  margin-top: 32px;
  padding: 16px;
  border: 1px solid var(--border);
  border-radius: var(--radius);
  background: var(--bg-secondary);
}
.demo-note { color: var(--warning); font-size: 14px; }
.widget { margin: 12px 0; }
.widget h3 { margin: 0 0 8px; font-size: 16px; }
.widget button {
  padding: 6px 12px;
  margin: 2px;
  border: 1px solid var(--border);
  border-radius: var(--radius);
  background: var(--bg);
  color: var(--text);
  cursor: pointer;
  font: inherit;
}
.widget button.active { background: var(--accent); border-color: var(--accent); color: #fff; }
.widget button:disabled { opacity: 0.5; cursor: default; }

.steps { display: flex; flex-wrap: wrap; gap: 8px; padding: 0; list-style: none; counter-reset: step; }
.steps li {
  counter-increment: step;
  padding: 4px 10px;
  border-radius: 999px;
  background: var(--bg-tertiary);
  color: var(--text-secondary);
  font-size: 13px;
}
.steps li::before { content: counter(step) ". "; }
.steps li.done { color: var(--success); }
.steps li.current { background: var(--accent); color: #fff; }
.step-detail { min-height: 48px; }
.step-detail h4 { margin: 8px 0 4px; }
.position { font-size: 13px; color: var(--text-secondary); margin: 0 8px; }

.toggle-label { font-weight: 600; }
.toggle-content { margin-top: 8px; }

.run-output { min-height: 40px; background: var(--bg); }
.spinner {
  display: inline-block;
  width: 14px; height: 14px;
  border: 2px solid var(--border);
  border-top-color: var(--accent);
  border-radius: 50%;
  animation: spin 0.8s linear infinite;
}
@keyframes spin { to { transform: rotate(360deg); } }

.revealed { padding-left: 20px; }
.revealed li { animation: fade-in 0.3s ease-in; }
.revealed li.pending { list-style: none; color: var(--text-secondary); }
@keyframes fade-in { from { opacity: 0; } to { opacity: 1; } }

.dashboard { padding: 12px; background: var(--bg); border: 1px solid var(--border); border-radius: var(--radius); }
.gauge .value { font-size: 36px; font-weight: 600; }
.meter { height: 8px; background: var(--bg-tertiary); border-radius: 4px; overflow: hidden; margin: 8px 0; }
.meter span { display: block; height: 100%; background: var(--success); }
.readings { font-size: 13px; color: var(--text-secondary); }
.car-message { font-weight: 600; }

.operands input { width: 100px; padding: 6px; font: inherit; }
.operands select { padding: 6px; font: inherit; }
.calc-result { font-size: 18px; }

/* ===== Not found ===== */
.not-found { text-align: center; padding-top: 64px; }

/* ===== Mobile ===== */
@media (max-width: 900px) {
  .menu-toggle { display: inline-block; }
  .concept-links { display: none; }
  .concept-switch { display: block; }
  .search input { width: 140px; }
  .sidebar { transform: translateX(-100%); transition: transform 0.2s; z-index: 20; }
  .sidebar.open { transform: none; }
  .sidebar-overlay.visible {
    display: block;
    position: fixed;
    inset: var(--navbar-height) 0 0 0;
    background: rgba(0, 0, 0, 0.3);
    z-index: 10;
  }
  .content { margin-left: 0; padding: 24px 16px; }
}
`

// jsContent drives theme switching, the sidebar, search and, on the live
// server, the websocket demo session.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;
  var body = document.body;
  var live = body.getAttribute("data-live") === "true";
  var base = body.getAttribute("data-base") || "";

  // ===== Theme toggle =====
  var themeToggle = document.getElementById("theme-toggle");

  function getStoredTheme() {
    try { return localStorage.getItem("oopconcepts-theme"); } catch(e) { return null; }
  }

  function setTheme(theme) {
    html.setAttribute("data-theme", theme);
    try { localStorage.setItem("oopconcepts-theme", theme); } catch(e) {}
  }

  var stored = getStoredTheme();
  if (stored) {
    setTheme(stored);
  } else if (window.matchMedia && window.matchMedia("(prefers-color-scheme: dark)").matches) {
    setTheme("dark");
  }

  if (themeToggle) {
    themeToggle.addEventListener("click", function() {
      var current = html.getAttribute("data-theme") || "light";
      setTheme(current === "dark" ? "light" : "dark");
    });
  }

  // ===== Sidebar toggle (mobile) =====
  var menuToggle = document.getElementById("menu-toggle");
  var overlay = document.getElementById("sidebar-overlay");

  function toggleSidebar() {
    var sidebar = document.getElementById("sidebar");
    if (sidebar) sidebar.classList.toggle("open");
    overlay.classList.toggle("visible");
  }

  if (menuToggle) menuToggle.addEventListener("click", toggleSidebar);
  if (overlay) overlay.addEventListener("click", toggleSidebar);

  // Group headings are bound on every view swap.
  function bindTree() {
    document.querySelectorAll(".group-toggle").forEach(function(toggle) {
      toggle.addEventListener("click", function() {
        this.parentElement.classList.toggle("expanded");
      });
    });
  }
  bindTree();

  // ===== Websocket session =====
  var ws = null;
  var historyIndex = 0;
  var switchEl = document.getElementById("concept-switch");
  var switchTrigger = document.getElementById("concept-switch-trigger");

  function send(msg) {
    if (ws && ws.readyState === WebSocket.OPEN) {
      ws.send(JSON.stringify(msg));
      return true;
    }
    return false;
  }

  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    ws = new WebSocket(proto + location.host + "/ws/demo?path=" + encodeURIComponent(location.pathname));
    ws.onmessage = function(e) {
      var msg;
      try { msg = JSON.parse(e.data); } catch(err) { return; }
      if (msg.type === "state") {
        applyState(msg);
      } else if (msg.type === "reload") {
        location.reload();
      } else if (msg.type === "error") {
        console.warn("oopconcepts:", msg.error);
      }
    };
    ws.onclose = function() {
      ws = null;
      setTimeout(connect, 2000);
    };
  }

  function markConcept(conceptId) {
    document.querySelectorAll("[data-concept]").forEach(function(a) {
      if (a.tagName !== "A") return;
      a.classList.toggle("active", a.getAttribute("data-concept") === conceptId);
    });
  }

  function applyState(msg) {
    if (msg.view) {
      document.getElementById("view").innerHTML = msg.view;
      if (msg.title) document.title = msg.title;
      bindTree();
      window.scrollTo(0, 0);
    }
    if (msg.nav) {
      markConcept(msg.nav.concept_id || "");
      if (msg.nav.kind !== "not_found" && msg.nav.path !== location.pathname) {
        history.replaceState(history.state, "", msg.nav.path);
      }
    }
    var demo = document.getElementById("demo");
    if (demo && typeof msg.demo_html === "string") {
      demo.innerHTML = msg.demo_html;
    }
    setOverlay(!!msg.overlay);
  }

  // ===== Concept switch overlay =====
  var outsideListener = null;

  function setOverlay(open) {
    if (!switchEl) return;
    switchEl.classList.toggle("open", open);
    switchTrigger.setAttribute("aria-expanded", open ? "true" : "false");
    if (open && !outsideListener) {
      outsideListener = function(e) {
        if (switchEl.contains(e.target)) return;
        if (!send({ type: "overlay", event: "outside" })) setOverlay(false);
      };
      document.addEventListener("pointerdown", outsideListener);
    } else if (!open && outsideListener) {
      document.removeEventListener("pointerdown", outsideListener);
      outsideListener = null;
    }
  }

  if (switchTrigger) {
    switchTrigger.addEventListener("click", function() {
      if (!send({ type: "overlay", event: "trigger" })) {
        setOverlay(!switchEl.classList.contains("open"));
      }
    });
  }

  // ===== Navigation =====
  document.addEventListener("click", function(e) {
    var link = e.target.closest("a[data-nav]");
    if (link) {
      if (!live || e.metaKey || e.ctrlKey || e.shiftKey || e.button !== 0) return;
      var path = link.getAttribute("href");
      if (!send({ type: "navigate", path: path })) return;
      e.preventDefault();
      historyIndex++;
      history.pushState({ idx: historyIndex }, "", path);
      closeSearch();
      return;
    }

    var button = e.target.closest("button[data-action]");
    if (button && !button.disabled) {
      send({ type: "action", action: {
        kind: button.getAttribute("data-action"),
        field: button.getAttribute("data-field") || "",
        value: button.getAttribute("data-value") || ""
      }});
    }
  });

  document.addEventListener("change", function(e) {
    var el = e.target;
    if (!el.matches || !el.matches("input[data-action], select[data-action]")) return;
    var action = { kind: el.getAttribute("data-action"), field: el.getAttribute("data-field") || "" };
    if (el.tagName === "SELECT") {
      action.value = el.value;
    } else {
      action.number = parseFloat(el.value) || 0;
    }
    send({ type: "action", action: action });
  });

  window.addEventListener("popstate", function(e) {
    var target = e.state && typeof e.state.idx === "number" ? e.state.idx : 0;
    var sent = target < historyIndex ? send({ type: "back" }) : send({ type: "forward" });
    historyIndex = target;
    if (!sent) location.reload();
  });

  if (live && "WebSocket" in window) {
    history.replaceState({ idx: 0 }, "", location.pathname);
    connect();
  }

  // ===== Search =====
  var searchInput = document.getElementById("search-input");
  var searchResults = document.getElementById("search-results");
  var staticIndex = null;
  var searchTimer = null;

  function closeSearch() {
    if (searchResults) searchResults.classList.remove("visible");
  }

  function hrefFor(path) {
    if (live) return path;
    var rel = path.replace(/^\/+/, "");
    return base + (rel ? rel + "/" : "") + "index.html";
  }

  function escapeHTML(s) {
    return String(s).replace(/[&<>"']/g, function(c) {
      return { "&": "&amp;", "<": "&lt;", ">": "&gt;", "\"": "&quot;", "'": "&#39;" }[c];
    });
  }

  function showResults(results) {
    if (!results.length) {
      searchResults.innerHTML = '<li class="empty">No matches</li>';
    } else {
      searchResults.innerHTML = results.map(function(r) {
        return '<li><a href="' + escapeHTML(hrefFor(r.path)) + '" data-nav>' + escapeHTML(r.title) +
          '<span class="result-concept">' + escapeHTML(r.concept_name) + '</span></a></li>';
      }).join("");
    }
    searchResults.classList.add("visible");
  }

  function searchStatic(query) {
    var terms = query.toLowerCase().split(/\s+/).filter(Boolean);
    var run = function() {
      showResults(staticIndex.filter(function(d) {
        var hay = [d.title, d.concept_name, d.summary, d.body, d.code].join(" ").toLowerCase();
        return terms.every(function(t) { return hay.indexOf(t) !== -1; });
      }).slice(0, 10));
    };
    if (staticIndex) return run();
    fetch(base + "search-index.json")
      .then(function(r) { return r.json(); })
      .then(function(data) { staticIndex = data || []; run(); })
      .catch(function() { staticIndex = []; run(); });
  }

  if (searchInput && searchResults) {
    searchInput.addEventListener("input", function() {
      var query = this.value.trim();
      clearTimeout(searchTimer);
      if (!query) { closeSearch(); return; }
      searchTimer = setTimeout(function() {
        if (!live) return searchStatic(query);
        fetch("/api/search?q=" + encodeURIComponent(query))
          .then(function(r) { return r.json(); })
          .then(function(data) { showResults(data.results || []); })
          .catch(function() { closeSearch(); });
      }, 150);
    });
    searchInput.addEventListener("keydown", function(e) {
      if (e.key === "Escape") { this.value = ""; closeSearch(); }
    });
  }
})();
`
