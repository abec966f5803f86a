package ui

import "fmt"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle        = "app_title"
	KeyFile            = "file"
	KeySettings        = "settings"
	KeyLanguage        = "language"
	KeyCheckForUpdates = "check_for_updates"
	KeyAbout           = "about"
	KeyAboutText       = "about_text"
	KeyExit            = "exit"

	KeySectionFind     = "section_find"
	KeySectionFormat   = "section_format"
	KeySectionDownload = "section_download"
	KeySectionConvert  = "section_convert"

	KeyEnterURL          = "enter_url"
	KeyFindVideos        = "find_videos"
	KeyFormat            = "format"
	KeyResolution        = "resolution"
	KeyDownloadDirectory = "download_directory"
	KeyCurrentDirectory  = "current_directory"
	KeyBrowse            = "browse"
	KeyDownload          = "download"
	KeyCancel            = "cancel"
	KeyConversionMode    = "conversion_mode"
	KeyConvert           = "convert"
	KeyModeExtractAudio  = "mode_extract_audio"
	KeyModeCompress      = "mode_compress"
	KeyVerboseLog        = "verbose_log"
	KeySave              = "save"

	KeyPleaseEnterURL     = "please_enter_url"
	KeyInvalidURL         = "invalid_url"
	KeyLocating           = "locating"
	KeyFoundVideo         = "found_video"
	KeyFoundPlaylist      = "found_playlist"
	KeySelectFormat       = "select_format"
	KeyDownloadStarted    = "download_started"
	KeyDownloadProgress   = "download_progress"
	KeyDownloadFinished   = "download_finished"
	KeyCancelling         = "cancelling"
	KeyConverting         = "converting"
	KeyConversionFinished = "conversion_finished"
	KeyNothingToConvert   = "nothing_to_convert"
	KeyUpdateTitle        = "update_title"
	KeyRestartFailed      = "restart_failed"
	KeySettingsSaved      = "settings_saved"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyPathCopied         = "path_copied"
	KeyReveal             = "reveal"
	KeyOpen               = "open"
	KeyPath               = "path"
	KeySelectAll          = "select_all"
	KeyNoItemsSelected    = "no_items_selected"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns the localized text for key with args substituted
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:        "yt-dl",
		KeyFile:            "File",
		KeySettings:        "Settings",
		KeyLanguage:        "Language",
		KeyCheckForUpdates: "Check for updates",
		KeyAbout:           "About",
		KeyAboutText:       "yt-dl %s\nDownload videos and playlists, then extract audio or compress them.",
		KeyExit:            "Exit",

		KeySectionFind:     "1. Find videos",
		KeySectionFormat:   "2. Choose format and resolution",
		KeySectionDownload: "3. Download",
		KeySectionConvert:  "4. Convert",

		KeyEnterURL:          "Enter a video or playlist URL (youtube.com/watch?v=...)",
		KeyFindVideos:        "Find videos",
		KeyFormat:            "Format",
		KeyResolution:        "Resolution",
		KeyDownloadDirectory: "Download Directory",
		KeyCurrentDirectory:  "Current directory",
		KeyBrowse:            "Browse",
		KeyDownload:          "Download",
		KeyCancel:            "Cancel",
		KeyConversionMode:    "Conversion",
		KeyConvert:           "Convert",
		KeyModeExtractAudio:  "Extract audio (.mp3)",
		KeyModeCompress:      "Compress video (.mp4)",
		KeyVerboseLog:        "Verbose log",
		KeySave:              "Save",

		KeyPleaseEnterURL:     "Please enter a URL",
		KeyInvalidURL:         "Invalid URL",
		KeyLocating:           "Looking for videos...",
		KeyFoundVideo:         "Found: %s",
		KeyFoundPlaylist:      "Found %d videos in the playlist",
		KeySelectFormat:       "Please select a format and resolution",
		KeyDownloadStarted:    "Download started",
		KeyDownloadProgress:   "Downloading %s: %s",
		KeyDownloadFinished:   "Download finished",
		KeyCancelling:         "Cancelling...",
		KeyConverting:         "Converting %d of %d: %d%%",
		KeyConversionFinished: "%d of %d files were converted.",
		KeyNothingToConvert:   "There are no downloaded files to convert.",
		KeyUpdateTitle:        "Checking for updates",
		KeyRestartFailed:      "Please restart the application manually.",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyErrorOpeningFile:   "Error opening file",
		KeyPathCopied:         "Path copied to clipboard",
		KeyReveal:             "reveal",
		KeyOpen:               "open",
		KeyPath:               "path",
		KeySelectAll:          "Select all",
		KeyNoItemsSelected:    "Please select at least one video",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:        "yt-dl",
		KeyFile:            "Файл",
		KeySettings:        "Настройки",
		KeyLanguage:        "Язык",
		KeyCheckForUpdates: "Проверить обновления",
		KeyAbout:           "О программе",
		KeyAboutText:       "yt-dl %s\nСкачивание видео и плейлистов, извлечение звука и сжатие.",
		KeyExit:            "Выход",

		KeySectionFind:     "1. Поиск видео",
		KeySectionFormat:   "2. Формат и разрешение",
		KeySectionDownload: "3. Загрузка",
		KeySectionConvert:  "4. Конвертация",

		KeyEnterURL:          "Введите URL видео или плейлиста (youtube.com/watch?v=...)",
		KeyFindVideos:        "Найти видео",
		KeyFormat:            "Формат",
		KeyResolution:        "Разрешение",
		KeyDownloadDirectory: "Папка загрузки",
		KeyCurrentDirectory:  "Текущая папка",
		KeyBrowse:            "Обзор",
		KeyDownload:          "Скачать",
		KeyCancel:            "Отмена",
		KeyConversionMode:    "Конвертация",
		KeyConvert:           "Конвертировать",
		KeyModeExtractAudio:  "Извлечь звук (.mp3)",
		KeyModeCompress:      "Сжать видео (.mp4)",
		KeyVerboseLog:        "Подробный журнал",
		KeySave:              "Сохранить",

		KeyPleaseEnterURL:     "Пожалуйста, введите URL",
		KeyInvalidURL:         "Неверный URL",
		KeyLocating:           "Поиск видео...",
		KeyFoundVideo:         "Найдено: %s",
		KeyFoundPlaylist:      "В плейлисте найдено видео: %d",
		KeySelectFormat:       "Пожалуйста, выберите формат и разрешение",
		KeyDownloadStarted:    "Загрузка начата",
		KeyDownloadProgress:   "Загрузка %s: %s",
		KeyDownloadFinished:   "Загрузка завершена",
		KeyCancelling:         "Отмена...",
		KeyConverting:         "Конвертация %d из %d: %d%%",
		KeyConversionFinished: "Сконвертировано файлов: %d из %d.",
		KeyNothingToConvert:   "Нет скачанных файлов для конвертации.",
		KeyUpdateTitle:        "Проверка обновлений",
		KeyRestartFailed:      "Пожалуйста, перезапустите приложение вручную.",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyErrorOpeningFile:   "Ошибка открытия файла",
		KeyPathCopied:         "Путь скопирован",
		KeyReveal:             "показать",
		KeyOpen:               "открыть",
		KeyPath:               "путь",
		KeySelectAll:          "Выбрать все",
		KeyNoItemsSelected:    "Выберите хотя бы одно видео",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:        "yt-dl",
		KeyFile:            "Arquivo",
		KeySettings:        "Configurações",
		KeyLanguage:        "Idioma",
		KeyCheckForUpdates: "Verificar atualizações",
		KeyAbout:           "Sobre",
		KeyAboutText:       "yt-dl %s\nBaixe vídeos e playlists, depois extraia o áudio ou comprima-os.",
		KeyExit:            "Sair",

		KeySectionFind:     "1. Encontrar vídeos",
		KeySectionFormat:   "2. Formato e resolução",
		KeySectionDownload: "3. Baixar",
		KeySectionConvert:  "4. Converter",

		KeyEnterURL:          "Digite a URL de um vídeo ou playlist (youtube.com/watch?v=...)",
		KeyFindVideos:        "Encontrar vídeos",
		KeyFormat:            "Formato",
		KeyResolution:        "Resolução",
		KeyDownloadDirectory: "Diretório de Download",
		KeyCurrentDirectory:  "Diretório atual",
		KeyBrowse:            "Navegar",
		KeyDownload:          "Baixar",
		KeyCancel:            "Cancelar",
		KeyConversionMode:    "Conversão",
		KeyConvert:           "Converter",
		KeyModeExtractAudio:  "Extrair áudio (.mp3)",
		KeyModeCompress:      "Comprimir vídeo (.mp4)",
		KeyVerboseLog:        "Log detalhado",
		KeySave:              "Salvar",

		KeyPleaseEnterURL:     "Por favor, digite uma URL",
		KeyInvalidURL:         "URL inválida",
		KeyLocating:           "Procurando vídeos...",
		KeyFoundVideo:         "Encontrado: %s",
		KeyFoundPlaylist:      "%d vídeos encontrados na playlist",
		KeySelectFormat:       "Por favor, selecione formato e resolução",
		KeyDownloadStarted:    "Download iniciado",
		KeyDownloadProgress:   "Baixando %s: %s",
		KeyDownloadFinished:   "Download concluído",
		KeyCancelling:         "Cancelando...",
		KeyConverting:         "Convertendo %d de %d: %d%%",
		KeyConversionFinished: "%d de %d arquivos foram convertidos.",
		KeyNothingToConvert:   "Não há arquivos baixados para converter.",
		KeyUpdateTitle:        "Verificando atualizações",
		KeyRestartFailed:      "Por favor, reinicie o aplicativo manualmente.",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeyErrorOpeningFile:   "Erro ao abrir arquivo",
		KeyPathCopied:         "Caminho copiado",
		KeyReveal:             "mostrar",
		KeyOpen:               "abrir",
		KeyPath:               "caminho",
		KeySelectAll:          "Selecionar todos",
		KeyNoItemsSelected:    "Selecione pelo menos um vídeo",
	}
}
