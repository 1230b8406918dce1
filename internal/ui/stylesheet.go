package ui

const stylesheet = `
:root { --fg: #0f172a; --muted: #64748b; --border: #e2e8f0; --bg: #f8fafc; --primary: #1d4ed8; --danger: #dc2626; }
* { box-sizing: border-box; }
body { margin: 0; font-family: Inter, system-ui, sans-serif; color: var(--fg); background: var(--bg); }
.icon { width: 1rem; height: 1rem; vertical-align: middle; }
.app-header { display: flex; justify-content: space-between; align-items: center; padding: .75rem 1.5rem; background: #fff; border-bottom: 1px solid var(--border); }
.brand { display: flex; gap: .5rem; align-items: center; font-weight: 600; }
.header-right { display: flex; gap: 1rem; align-items: center; }
.clock { color: var(--muted); font-variant-numeric: tabular-nums; }
.layout { max-width: 72rem; margin: 0 auto; padding: 1.5rem; }
.muted { color: var(--muted); }
.badge { display: inline-flex; gap: .25rem; align-items: center; padding: .125rem .5rem; border-radius: 9999px; font-size: .75rem; font-weight: 600; border: 1px solid transparent; }
.badge-default { background: var(--primary); color: #fff; }
.badge-secondary { background: #e2e8f0; color: var(--fg); }
.badge-destructive { background: var(--danger); color: #fff; }
.badge-outline { border-color: var(--border); color: var(--fg); }
.role-menu summary { list-style: none; cursor: pointer; display: flex; gap: .25rem; align-items: center; }
.role-menu-items { position: absolute; margin: .25rem 0 0; padding: .25rem; list-style: none; background: #fff; border: 1px solid var(--border); border-radius: .5rem; }
.role-option { display: flex; gap: .5rem; align-items: center; width: 100%; padding: .375rem .5rem; border: 0; background: none; cursor: pointer; }
.role-option.active { font-weight: 600; }
.fleet-grid { display: grid; gap: 1rem; grid-template-columns: repeat(auto-fill, minmax(14rem, 1fr)); }
.card { background: #fff; border: 1px solid var(--border); border-radius: .75rem; padding: 1rem; }
.card-media { width: 100%; height: 8rem; object-fit: cover; border-radius: .5rem; }
.initials { display: flex; align-items: center; justify-content: center; font-size: 2rem; font-weight: 700; background: #e2e8f0; }
.card-line { display: flex; gap: .375rem; align-items: center; margin: .25rem 0; }
.skeleton-media, .skeleton-line { background: #e2e8f0; border-radius: .25rem; animation: pulse 1.5s ease-in-out infinite; }
.skeleton-media { height: 8rem; }
.skeleton-line { height: .75rem; margin-top: .5rem; }
.skeleton-line.short { width: 60%; }
.fleet-failed, .flash { color: var(--danger); }
.btn { display: inline-flex; gap: .5rem; align-items: center; padding: .5rem 1rem; border-radius: .5rem; border: 0; cursor: pointer; }
.btn-primary { background: var(--primary); color: #fff; }
.btn:disabled { opacity: .6; cursor: progress; }
.toast { margin: 1rem 0; padding: .75rem 1rem; border-radius: .5rem; border: 1px solid var(--border); background: #fff; }
.toast-success { border-color: #16a34a; }
.toast-error { border-color: var(--danger); }
.provisioning-results { list-style: none; padding: 0; }
.result { display: flex; flex-wrap: wrap; gap: .5rem; align-items: center; padding: .5rem 0; border-bottom: 1px solid var(--border); }
.credentials { display: flex; gap: 1rem; width: 100%; font-size: .875rem; }
.login-wrap { max-width: 24rem; margin: 4rem auto; padding: 2rem; background: #fff; border: 1px solid var(--border); border-radius: .75rem; }
.login-form { display: grid; gap: .5rem; }
@keyframes pulse { 50% { opacity: .5; } }
`
