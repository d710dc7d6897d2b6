package mailer

import (
	"fmt"

	"github.com/trawers-adr/registration-backend/interfaces"
)

// timeLayout renders timestamps the way the admin panel shows them.
const timeLayout = "02.01.2006, 15:04:05"

func adminNotificationHTML(reg *interfaces.Registration) string {
	return fmt.Sprintf(`
        <h2>Nowy zapis na szkolenie</h2>
        <p><strong>Imię i nazwisko:</strong> %s</p>
        <p><strong>Email:</strong> %s</p>
        <p><strong>Telefon:</strong> %s</p>
        <p><strong>Data zapisu:</strong> %s</p>
      `, reg.FullName, reg.Email, reg.Phone, reg.CreatedAt.Format(timeLayout))
}

func adminNotificationText(reg *interfaces.Registration) string {
	return fmt.Sprintf(`
        Nowy zapis na szkolenie

        Imię i nazwisko: %s
        Email: %s
        Telefon: %s
        Data zapisu: %s
      `, reg.FullName, reg.Email, reg.Phone, reg.CreatedAt.Format(timeLayout))
}

// The instruction mail is a fixed guide for the external fiszka process.
// Wording carried over unchanged from the deployed form.

func instructionHTML(reg *interfaces.Registration) string {
	return fmt.Sprintf(`
      <h2 style="margin:0 0 12px 0;">Dziękujemy za zapis!</h2>
      <p>Witaj %s,</p>
      <p>Twoje zgłoszenie zostało przyjęte. Poniżej znajdziesz krótką instrukcję, jak szybko dokończyć proces.</p>
      <p>
        <a href="%s" target="_blank" style="display:inline-block;padding:10px 14px;background:#7c3aed;color:#fff;text-decoration:none;border-radius:10px;font-weight:700">
          Wypełnij fiszkę teraz →
        </a>
      </p>
      <ol>
        <li><strong>Wypełnij fiszkę</strong><br>
          <div>Uwzględnij odpowiedzi:</div>
          <ul>
            <li>PKT. 1–8: swoje dane</li>
            <li>PKT. 9: <strong>NIE</strong></li>
            <li>PKT. 10: <strong>NIE</strong></li>
            <li>PKT. 11: <strong>NIE POTRZEBUJĘ...</strong></li>
            <li>PKT. 12: zaznacz <strong>TAK</strong>, jeśli masz wykształcenie średnie lub niższe (i masz świadectwo), posiadasz zaświadczenie o niepełnosprawności, jesteś zarejestrowany bezrobotny lub masz powyżej 55 lat.</li>
            <li>PKT. 14: <strong>TAK</strong></li>
          </ul>
          <div>1.2 Prześlij fiszkę.</div>
        </li>
        <li><strong>Mail z fiszką zwrotną</strong> — do ok. 3 min dostaniesz gotową fiszkę, pobierz ją.</li>
        <li><strong>Podpisz elektronicznie</strong><br>
          3.1 Wejdź: <a href="https://www.gov.pl/web/gov/podpisz-dokument-elektronicznie-wykorzystaj-podpis-zaufany" target="_blank">Podpisz dokument podpisem zaufanym</a><br>
          3.2 Kliknij <em>Start</em><br>
          3.3 Wybierz opcję „Chcesz podpisać dokument PDF”<br>
          3.4 „Podpisz lub sprawdź dokument PDF”<br>
          3.5 Wybierz fiszkę z dysku<br>
          3.6 Kliknij „Podpisz” i 3.7 podpisz Profilem Zaufanym (lub inną metodą)<br>
          3.8 Pobierz podpisaną fiszkę.
        </li>
        <li><strong>Sprawdź podpis</strong> — pieczątka powinna być w prawym górnym rogu.</li>
        <li><strong>Odeślij dokument</strong> — wyślij na adres podany w wiadomości z fiszką. W treści dopisz: „Proszę o pozytywne rozpatrzenie wniosku”.</li>
      </ol>
      <p style="margin-top:14px">Jeśli potrzebujesz pomocy przy wypełnianiu, zadzwoń: <a href="tel:+48500800800">+48 500 800 800</a></p>
    `, reg.FullName, interfaces.DefaultFiszkaLink)
}

func instructionText(reg *interfaces.Registration) string {
	return fmt.Sprintf(`
      Dziękujemy za zapis!
      Witaj %s,
      1) Wypełnij fiszkę: %s
         PKT.1–8: dane, PKT.9: NIE, PKT.10: NIE, PKT.11: NIE POTRZEBUJĘ...
         PKT.12: TAK (jeśli: wykształcenie ≤ średnie, niepełnosprawność, bezrobotny, >55 lat)
         PKT.14: TAK. Następnie prześlij fiszkę.
      2) W 3 min otrzymasz maila z fiszką zwrotną – pobierz ją.
      3) Podpisz elektronicznie:
         https://www.gov.pl/web/gov/podpisz-dokument-elektronicznie-wykorzystaj-podpis-zaufany
         Start → „Chcesz podpisać dokument PDF” → „Podpisz lub sprawdź dokument PDF”
         Wybierz plik → Podpisz → pobierz podpisaną fiszkę.
      4) Sprawdź pieczątkę w prawym górnym rogu.
      5) Odeślij podpisaną fiszkę na adres z wiadomości, dopisz:
         „Proszę o pozytywne rozpatrzenie wniosku”.
      Pomoc telefoniczna: +48 500 800 800
    `, reg.FullName, interfaces.DefaultFiszkaLink)
}
