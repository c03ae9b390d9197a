package service

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dictionary holds per-language lookup tables keyed by language display name.
// Names are matched exactly and case-sensitively.
type Dictionary struct {
	// Translations maps a whole source phrase to its translation.
	Translations map[string]map[string]string `yaml:"translations"`
	// References lists known-good variants used by the quality scorer.
	References map[string]map[string][]string `yaml:"references"`
	// Words maps lower-cased single words for token substitution.
	Words map[string]map[string]string `yaml:"words"`
}

// ReferenceVariants returns the known-good variants for original in language, phrase
// translation first, without duplicates.
func (d *Dictionary) ReferenceVariants(original, language string) []string {
	if d == nil {
		return nil
	}
	seen := map[string]struct{}{}
	var variants []string
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}
	if phrase, ok := d.Translations[language][original]; ok {
		add(phrase)
	}
	for _, v := range d.References[language][original] {
		add(v)
	}
	return variants
}

// Merge copies every entry of other into d, overriding on conflict.
func (d *Dictionary) Merge(other *Dictionary) {
	if other == nil {
		return
	}
	if d.Translations == nil {
		d.Translations = map[string]map[string]string{}
	}
	if d.References == nil {
		d.References = map[string]map[string][]string{}
	}
	if d.Words == nil {
		d.Words = map[string]map[string]string{}
	}
	for lang, entries := range other.Translations {
		if d.Translations[lang] == nil {
			d.Translations[lang] = map[string]string{}
		}
		for k, v := range entries {
			d.Translations[lang][k] = v
		}
	}
	for lang, entries := range other.References {
		if d.References[lang] == nil {
			d.References[lang] = map[string][]string{}
		}
		for k, v := range entries {
			d.References[lang][k] = append([]string(nil), v...)
		}
	}
	for lang, entries := range other.Words {
		if d.Words[lang] == nil {
			d.Words[lang] = map[string]string{}
		}
		for k, v := range entries {
			d.Words[lang][strings.ToLower(k)] = v
		}
	}
}

// LoadDictionary returns the built-in dictionary, extended by the YAML file at path when set.
func LoadDictionary(path string) (*Dictionary, error) {
	dict := DefaultDictionary()
	if strings.TrimSpace(path) == "" {
		return dict, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary file %s: %w", path, err)
	}
	var extra Dictionary
	if err := yaml.Unmarshal(raw, &extra); err != nil {
		return nil, fmt.Errorf("parse dictionary file %s: %w", path, err)
	}
	dict.Merge(&extra)
	return dict, nil
}

// DefaultDictionary returns the built-in tables.
func DefaultDictionary() *Dictionary {
	return &Dictionary{
		Translations: map[string]map[string]string{
			"Spanish": {
				"Sign In":         "Iniciar Sesión",
				"Sign Out":        "Cerrar Sesión",
				"Sign Up":         "Registrarse",
				"Password":        "Contraseña",
				"Home":            "Inicio",
				"Settings":        "Configuración",
				"Save":            "Guardar",
				"Cancel":          "Cancelar",
				"Delete":          "Eliminar",
				"Search":          "Buscar",
				"Welcome":         "Bienvenido",
				"Forgot Password": "Olvidé mi contraseña",
			},
			"French": {
				"Sign In":         "Se Connecter",
				"Sign Out":        "Se Déconnecter",
				"Sign Up":         "S'inscrire",
				"Password":        "Mot de passe",
				"Home":            "Accueil",
				"Settings":        "Paramètres",
				"Save":            "Enregistrer",
				"Cancel":          "Annuler",
				"Delete":          "Supprimer",
				"Search":          "Rechercher",
				"Welcome":         "Bienvenue",
				"Forgot Password": "Mot de passe oublié",
			},
			"German": {
				"Sign In":         "Anmelden",
				"Sign Out":        "Abmelden",
				"Sign Up":         "Registrieren",
				"Password":        "Passwort",
				"Home":            "Startseite",
				"Settings":        "Einstellungen",
				"Save":            "Speichern",
				"Cancel":          "Abbrechen",
				"Delete":          "Löschen",
				"Search":          "Suchen",
				"Welcome":         "Willkommen",
				"Forgot Password": "Passwort vergessen",
			},
			"Portuguese": {
				"Sign In":  "Entrar",
				"Sign Out": "Sair",
				"Password": "Senha",
				"Home":     "Início",
				"Settings": "Configurações",
				"Save":     "Salvar",
				"Cancel":   "Cancelar",
				"Search":   "Pesquisar",
				"Welcome":  "Bem-vindo",
			},
			"Italian": {
				"Sign In":  "Accedi",
				"Sign Out": "Esci",
				"Password": "Password",
				"Home":     "Home",
				"Settings": "Impostazioni",
				"Save":     "Salva",
				"Cancel":   "Annulla",
				"Search":   "Cerca",
				"Welcome":  "Benvenuto",
			},
			"Indonesian": {
				"Sign In":  "Masuk",
				"Sign Out": "Keluar",
				"Password": "Kata Sandi",
				"Home":     "Beranda",
				"Settings": "Pengaturan",
				"Save":     "Simpan",
				"Cancel":   "Batal",
				"Search":   "Cari",
				"Welcome":  "Selamat Datang",
			},
		},
		References: map[string]map[string][]string{
			"Spanish": {
				"Sign In":  {"Iniciar Sesión", "Acceder", "Entrar"},
				"Settings": {"Configuración", "Ajustes"},
				"Save":     {"Guardar"},
			},
			"French": {
				"Sign In":  {"Se Connecter", "Connexion"},
				"Settings": {"Paramètres", "Réglages"},
			},
			"German": {
				"Sign In":  {"Anmelden", "Einloggen"},
				"Settings": {"Einstellungen"},
			},
			"Portuguese": {
				"Sign In": {"Entrar", "Iniciar Sessão"},
			},
			"Indonesian": {
				"Sign In": {"Masuk"},
			},
		},
		Words: map[string]map[string]string{
			"Spanish": {
				"account": "cuenta", "add": "añadir", "cancel": "cancelar", "delete": "eliminar",
				"edit": "editar", "email": "correo", "home": "inicio", "name": "nombre",
				"new": "nuevo", "password": "contraseña", "profile": "perfil", "save": "guardar",
				"search": "buscar", "settings": "configuración", "user": "usuario",
			},
			"French": {
				"account": "compte", "add": "ajouter", "cancel": "annuler", "delete": "supprimer",
				"edit": "modifier", "email": "courriel", "home": "accueil", "name": "nom",
				"new": "nouveau", "password": "mot de passe", "profile": "profil", "save": "enregistrer",
				"search": "rechercher", "settings": "paramètres", "user": "utilisateur",
			},
			"German": {
				"account": "Konto", "add": "hinzufügen", "cancel": "abbrechen", "delete": "löschen",
				"edit": "bearbeiten", "email": "E-Mail", "home": "Startseite", "name": "Name",
				"new": "neu", "password": "Passwort", "profile": "Profil", "save": "speichern",
				"search": "suchen", "settings": "Einstellungen", "user": "Benutzer",
			},
			"Portuguese": {
				"account": "conta", "add": "adicionar", "cancel": "cancelar", "delete": "excluir",
				"edit": "editar", "home": "início", "name": "nome", "new": "novo",
				"password": "senha", "profile": "perfil", "save": "salvar", "search": "pesquisar",
				"user": "usuário",
			},
			"Italian": {
				"account": "account", "add": "aggiungi", "cancel": "annulla", "delete": "elimina",
				"edit": "modifica", "home": "home", "name": "nome", "new": "nuovo",
				"profile": "profilo", "save": "salva", "search": "cerca", "user": "utente",
			},
			"Indonesian": {
				"account": "akun", "add": "tambah", "cancel": "batal", "delete": "hapus",
				"edit": "ubah", "home": "beranda", "name": "nama", "new": "baru",
				"password": "kata sandi", "profile": "profil", "save": "simpan", "search": "cari",
				"settings": "pengaturan", "user": "pengguna",
			},
		},
	}
}
