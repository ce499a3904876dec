package auth

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// LandingPage renders the welcome hero with the login and signup tabs. Both
// forms only fire events (toasts, navigation), so nothing is swapped.
func LandingPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, landingHTML)
		return err
	})
}

const landingHTML = `<main class="mx-auto grid min-h-screen max-w-5xl items-center gap-10 px-4 py-12 md:grid-cols-2">
	<section>
		<h1 class="mb-4 text-5xl font-bold">Bem-vindo ao FutPlan!</h1>
		<p class="text-xl text-slate-600">Organize seus times, locais e partidas em um só lugar.</p>
	</section>
	<section class="rounded-lg border bg-white p-6 shadow-sm">
		<div class="mb-6 grid grid-cols-2 gap-1 rounded bg-slate-100 p-1" role="tablist">
			<button type="button" role="tab" class="tab-active rounded px-3 py-2" data-tab="login" aria-selected="true">Login</button>
			<button type="button" role="tab" class="rounded px-3 py-2" data-tab="signup" aria-selected="false">Cadastro</button>
		</div>

		<div data-panel="login">
			<form id="login-form" class="space-y-4" hx-post="/auth/login" hx-swap="none" hx-disabled-elt="find fieldset">
				<fieldset class="space-y-4">
					<div>
						<label for="login-email" class="block text-sm font-medium">Email</label>
						<input id="login-email" name="email" type="email" required placeholder="seu@email.com" class="mt-1 w-full rounded border px-3 py-2">
					</div>
					<div>
						<label for="login-password" class="block text-sm font-medium">Senha</label>
						<input id="login-password" name="senha" type="password" required placeholder="••••••••" class="mt-1 w-full rounded border px-3 py-2">
					</div>
					<button type="submit" class="w-full rounded px-4 py-2 text-white" style="background:var(--theme-primary)">Entrar</button>
				</fieldset>
			</form>
		</div>

		<div data-panel="signup" hidden>
			<form id="signup-form" class="space-y-4" hx-post="/auth/signup" hx-swap="none" hx-disabled-elt="find fieldset">
				<fieldset class="space-y-4">
					<div>
						<label for="signup-name" class="block text-sm font-medium">Nome completo</label>
						<input id="signup-name" name="nome" type="text" required placeholder="Seu nome" class="mt-1 w-full rounded border px-3 py-2">
					</div>
					<div>
						<label for="signup-email" class="block text-sm font-medium">Email</label>
						<input id="signup-email" name="email" type="email" required placeholder="seu@email.com" class="mt-1 w-full rounded border px-3 py-2">
					</div>
					<div>
						<label for="signup-gender" class="block text-sm font-medium">Gênero</label>
						<select id="signup-gender" name="genero" required class="mt-1 w-full rounded border px-3 py-2">
							<option value="">Selecione seu gênero</option>
							<option value="M">Masculino</option>
							<option value="F">Feminino</option>
						</select>
					</div>
					<div>
						<label for="signup-birthdate" class="block text-sm font-medium">Data de nascimento</label>
						<input id="signup-birthdate" name="data_nascimento" type="date" required class="mt-1 w-full rounded border px-3 py-2">
					</div>
					<div>
						<label for="signup-phone" class="block text-sm font-medium">Número de celular</label>
						<input id="signup-phone" name="celular" type="tel" required placeholder="(00) 00000-0000" class="mt-1 w-full rounded border px-3 py-2">
					</div>
					<div>
						<label for="signup-password" class="block text-sm font-medium">Senha</label>
						<input id="signup-password" name="senha" type="password" required placeholder="••••••••" class="mt-1 w-full rounded border px-3 py-2">
					</div>
					<button type="submit" class="w-full rounded px-4 py-2 text-white" style="background:var(--theme-primary)">Criar conta</button>
				</fieldset>
			</form>
		</div>
	</section>
</main>`
